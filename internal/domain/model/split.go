package model

import "fmt"

// Split names the dataset partition a season belongs to.
type Split string

// Dataset splits.
const (
	SplitTraining   Split = "training"
	SplitTest       Split = "test"
	SplitValidation Split = "validation"
)

// Splits returns all splits in generation order.
func Splits() []Split {
	return []Split{SplitTraining, SplitTest, SplitValidation}
}

// DirName is the directory artifacts of the split are written under.
func (s Split) DirName() string {
	return string(s) + "_data"
}

// ParseSplit validates a split name.
func ParseSplit(name string) (Split, error) {
	switch Split(name) {
	case SplitTraining, SplitTest, SplitValidation:
		return Split(name), nil
	default:
		return "", fmt.Errorf("unknown split %q", name)
	}
}
