package lexer

// Options configure one lexer instance.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil; scanning always
	// continues either way.
	Reporter Reporter
	// TabWidth is the indentation weight of one tab character.
	// Zero means the default of 4.
	TabWidth int
}

func (o Options) tabWidth() int {
	if o.TabWidth <= 0 {
		return 4
	}
	return o.TabWidth
}
