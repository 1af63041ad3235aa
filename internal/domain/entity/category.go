package entity

import "fmt"

// Category is an image-exam type. Its integer value is the label index the
// multiclass model was trained with, so the order below must never change.
type Category int

const (
	CategoryTomography Category = iota
	CategoryMRI
	CategoryUltrasound
	CategoryRadiography
	CategoryElectrocardiogram
	CategoryDensitometry
)

// NotImageExam is the result assigned to texts the triage stage rejects
const NotImageExam = "Não é exame de imagem"

// Binary triage labels
const (
	LabelNotExam = 0
	LabelExam    = 1
)

var categoryNames = [...]string{
	CategoryTomography:        "Tomografia",
	CategoryMRI:               "Ressonância Magnética",
	CategoryUltrasound:        "Ultrassonografia",
	CategoryRadiography:       "Radiografia",
	CategoryElectrocardiogram: "Eletrocardiograma",
	CategoryDensitometry:      "Densitometria",
}

// NumCategories is the number of multiclass labels
const NumCategories = len(categoryNames)

// Categories returns every category in index order
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

// Index returns the model label index of the category
func (c Category) Index() int {
	return int(c)
}

// String returns the display name of the category
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// CategoryFromIndex maps a multiclass label index to its category
func CategoryFromIndex(idx int) (Category, bool) {
	c := Category(idx)
	return c, c.Valid()
}

// CategoryFromName maps a display name back to its category
func CategoryFromName(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// IsExamLabel reports whether a result label names an image exam
func IsExamLabel(label string) bool {
	_, ok := CategoryFromName(label)
	return ok
}
