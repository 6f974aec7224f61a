package domain

// Grade is a class year, from pre-kindergarten to twelfth grade.
type Grade string

const (
	GradePreK         Grade = "PK"
	GradeKindergarten Grade = "KG"
	GradeFirst        Grade = "01"
	GradeSecond       Grade = "02"
	GradeThird        Grade = "03"
	GradeFourth       Grade = "04"
	GradeFifth        Grade = "05"
	GradeSixth        Grade = "06"
	GradeSeventh      Grade = "07"
	GradeEighth       Grade = "08"
	GradeNinth        Grade = "09"
	GradeTenth        Grade = "10"
	GradeEleventh     Grade = "11"
	GradeTwelfth      Grade = "12"
)

var allGrades = []Grade{
	GradePreK, GradeKindergarten,
	GradeFirst, GradeSecond, GradeThird, GradeFourth, GradeFifth, GradeSixth,
	GradeSeventh, GradeEighth, GradeNinth, GradeTenth, GradeEleventh, GradeTwelfth,
}

var gradeCodes = func() map[string]Grade {
	m := make(map[string]Grade, len(allGrades))
	for _, g := range allGrades {
		m[string(g)] = g
	}
	return m
}()

// ParseGrade decodes a wire grade code. Grades 1-12 must be zero padded.
//
// Errors: CodeUnknownEnumCode.
func ParseGrade(s string) (Grade, error) {
	g, ok := gradeCodes[s]
	if !ok {
		return "", UnknownEnumCode("grade", s)
	}
	return g, nil
}

// IsValid reports whether g is a declared grade.
func (g Grade) IsValid() bool {
	_, ok := gradeCodes[string(g)]
	return ok
}

func (g Grade) String() string {
	return string(g)
}

func (g Grade) MarshalText() ([]byte, error) {
	if !g.IsValid() {
		return nil, UnknownEnumCode("grade", string(g))
	}
	return []byte(g), nil
}

func (g *Grade) UnmarshalText(text []byte) error {
	parsed, err := ParseGrade(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Grades lists every grade from PreK to Twelfth.
func Grades() []Grade {
	return append([]Grade(nil), allGrades...)
}
