package base

// Secret keeps its column behind an unexported field without a setter.
type Secret struct {
	token string `column:"token"`
}

func (s Secret) Masked() bool {
	return s.token != ""
}

// Audit is embedded by pointer in the fixtures.
type Audit struct {
	By string `column:"by"`
}
