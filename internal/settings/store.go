package settings

import "sync"

// Store adapts a settings file to the capture.OffsetStore contract: the
// calibration offset is read once at session construction and written back
// on every user mutation, preserving the other settings in the file.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (st *Store) LoadOffset() (float64, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := LoadFrom(st.path)
	if err != nil {
		return 0, err
	}

	return s.Calibration.Offset, nil
}

func (st *Store) SaveOffset(db float64) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, err := LoadFrom(st.path)
	if err != nil {
		s = Default()
	}
	s.Calibration.Offset = db

	return s.SaveTo(st.path)
}
