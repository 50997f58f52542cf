package shortener

// Observer receives allocation outcomes, typically to count them.
type Observer interface {
	Allocated(custom bool)
	Collision()
	AliasConflict()
	Exhausted()
}

// NopObserver discards every outcome.
type NopObserver struct{}

func (NopObserver) Allocated(bool) {}
func (NopObserver) Collision()     {}
func (NopObserver) AliasConflict() {}
func (NopObserver) Exhausted()     {}
