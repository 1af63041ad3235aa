package service

// Augmenter produces a paraphrased copy of a training text
type Augmenter interface {
	Augment(text string) (string, error)
}
