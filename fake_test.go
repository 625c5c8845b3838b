package governance

// fakeWriter is a fake implementation of io.Writer.
type fakeWriter struct {
	n   int
	err error
}

// newFakeWriter returns a new Writer.
func newFakeWriter(n int, err error) *fakeWriter {
	return &fakeWriter{
		n:   n,
		err: err,
	}
}

// Write doesn't actually write anything, it just returns the values in the Writer.
func (w *fakeWriter) Write(p []byte) (n int, err error) {
	return w.n, w.err
}
