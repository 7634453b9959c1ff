package numeral

// Symbol pairs a value with the Roman token that encodes it.
type Symbol struct {
	Value int
	Text  string
}

// Converter describes the behaviour required from an integer to Roman numeral encoder.
type Converter interface {
	Convert(n int) (string, error)
}
