package ngram

// Windows returns every contiguous run of n tokens, in order. It returns
// nil when n <= 0 or n exceeds len(tokens). The windows share the backing
// array of tokens.
func Windows(tokens []string, n int) [][]string {
	if n <= 0 || n > len(tokens) {
		return nil
	}
	out := make([][]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, tokens[i:i+n:i+n])
	}
	return out
}

// Pad surrounds a sentence with n-1 BOS tokens and a single EOS token, so
// that an order-n model sees a full context for the first word.
func Pad(tokens []string, n int) []string {
	pre := max(n-1, 0)
	out := make([]string, 0, len(tokens)+pre+1)
	for i := 0; i < pre; i++ {
		out = append(out, BOS)
	}
	out = append(out, tokens...)
	return append(out, EOS)
}

// Feed inserts every order-n window of the padded sentence into c and
// returns how many were inserted.
func Feed(c Counter, sentence []string, n int) int {
	windows := Windows(Pad(sentence, n), n)
	for _, w := range windows {
		c.Insert(w)
	}
	return len(windows)
}
