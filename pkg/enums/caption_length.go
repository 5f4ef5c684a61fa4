package enums

// CaptionLength controls how long generated captions should be.
type CaptionLength string

const (
	CaptionLengthShort  CaptionLength = "short"
	CaptionLengthMedium CaptionLength = "medium"
	CaptionLengthLong   CaptionLength = "long"
)

var validCaptionLengths = []CaptionLength{
	CaptionLengthShort,
	CaptionLengthMedium,
	CaptionLengthLong,
}

// String returns the literal string for the length.
func (c CaptionLength) String() string {
	return string(c)
}

// IsValid reports whether the length is known.
func (c CaptionLength) IsValid() bool {
	for _, candidate := range validCaptionLengths {
		if candidate == c {
			return true
		}
	}
	return false
}

// Normalize returns the length, or medium when the value is unknown.
func (c CaptionLength) Normalize() CaptionLength {
	if c.IsValid() {
		return c
	}
	return CaptionLengthMedium
}
