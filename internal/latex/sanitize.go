package latex

// Sanitizer runs the cleanup stages over raw model output, in order: fence
// unwrapping (optional), punctuation normalization, preamble stripping,
// ampersand escaping and brace balancing.
type Sanitizer struct {
	balancer     Balancer
	unwrapFences bool
}

// NewSanitizer builds a Sanitizer for a brace mode (see NewBalancer).
func NewSanitizer(braceMode string, unwrapFences bool) (*Sanitizer, error) {
	b, err := NewBalancer(braceMode)
	if err != nil {
		return nil, err
	}
	return &Sanitizer{balancer: b, unwrapFences: unwrapFences}, nil
}

func (s *Sanitizer) Sanitize(raw string) string {
	text := raw
	if s.unwrapFences {
		text = UnwrapFence(text)
	}
	text = NormalizePunctuation(text)
	text = StripPreamble(text)
	text = EscapeAmpersands(text)
	b := s.balancer
	if b == nil {
		b = LegacyBalancer{}
	}
	return b.Balance(text)
}
