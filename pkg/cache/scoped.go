package cache

// ScopedKeyer prefixes every key produced by an inner Keyer, so several
// projects or tenants can share one Redis or Mongo backend without
// colliding.
//
//	keyer := cache.NewScopedKeyer(nil, "team-a:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner (the default keyer when nil) with prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

func (k *ScopedKeyer) FigureKey(layoutHash string, opts FigureKeyOpts) string {
	return k.prefix + k.inner.FigureKey(layoutHash, opts)
}

func (k *ScopedKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(graphHash, opts)
}
