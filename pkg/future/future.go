package future

// Future represents a value obtained asynchronously. A future is loading,
// errored or resolved; loading and errored futures may still carry data
// from a previous successful load.
type Future[T any] struct {
	IsLoading bool
	Err       error

	data    T
	hasData bool
}

// Loading returns a future that has no data yet.
func Loading[T any]() Future[T] {
	return Future[T]{IsLoading: true}
}

// LoadingWithData returns a loading future that still exposes stale data.
func LoadingWithData[T any](data T) Future[T] {
	return Future[T]{IsLoading: true, data: data, hasData: true}
}

// Errored returns a failed future.
func Errored[T any](err error) Future[T] {
	return Future[T]{Err: err}
}

// ErroredWithData returns a failed future that still exposes stale data.
func ErroredWithData[T any](err error, data T) Future[T] {
	return Future[T]{Err: err, data: data, hasData: true}
}

// Resolved returns a future holding data.
func Resolved[T any](data T) Future[T] {
	return Future[T]{data: data, hasData: true}
}

// Value returns the carried data and whether any is present.
func (f Future[T]) Value() (T, bool) {
	return f.data, f.hasData
}

// HasData reports whether the future carries data, stale or fresh.
func (f Future[T]) HasData() bool {
	return f.hasData
}

// Ready reports whether the data can be used: it is present and either
// resolved or being revalidated in the background.
func (f Future[T]) Ready() bool {
	return f.hasData && f.Err == nil
}

// Map derives a new future from f. Loading and errored futures propagate
// unchanged (without data); fn only runs on resolved data.
func Map[T, U any](f Future[T], fn func(T) U) Future[U] {
	if f.IsLoading {
		return Loading[U]()
	}
	if f.Err != nil {
		return Errored[U](f.Err)
	}
	if !f.hasData {
		return Loading[U]()
	}
	return Resolved(fn(f.data))
}
