package domain

// IDRef is a cross-entity pointer as it appears in wire records.
//
// Neither Href nor Type is validated, and Type is not checked against the
// entity ID actually names. Normalization keeps only ID, re-typed to the kind
// implied by the field holding the reference.
type IDRef struct {
	Href string `json:"href"`
	ID   AnyID  `json:"sourcedId"`
	Type string `json:"type"`
}

// RetypeRef re-wraps the identifier of a wire reference as kind K, discarding
// Href and Type.
//
// This is the only conversion between identifier kinds. It exists for the
// normalization step, where a field's schema position fixes the kind of the
// entity it references; other code has no business calling it.
func RetypeRef[K Kind](ref IDRef) ID[K] {
	return ID[K]{guid: ref.ID.guid}
}

// RetypeRefs applies RetypeRef to each reference, preserving order.
func RetypeRefs[K Kind](refs []IDRef) []ID[K] {
	ids := make([]ID[K], len(refs))
	for i, ref := range refs {
		ids[i] = RetypeRef[K](ref)
	}
	return ids
}

// NewIDRef builds the wire reference for a typed identifier, with Type set to
// the kind's wire tag and Href to "/<collection>/<id>".
func NewIDRef[K Kind](id ID[K]) IDRef {
	var k K
	href := id.String()
	if c := k.collection(); c != "" {
		href = "/" + c + "/" + href
	}
	return IDRef{
		Href: href,
		ID:   AnyID{guid: id.guid},
		Type: k.wireType(),
	}
}

// NewIDRefs applies NewIDRef to each identifier, preserving order.
func NewIDRefs[K Kind](ids []ID[K]) []IDRef {
	refs := make([]IDRef, len(ids))
	for i, id := range ids {
		refs[i] = NewIDRef(id)
	}
	return refs
}
