package simplelog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// fileDayFormat names one file per UTC day inside the folder.
const fileDayFormat = "2006-01-02"

// fileSink appends to <folder>/<YYYY-MM-DD>.log and switches files when the
// UTC date changes.
type fileSink struct {
	folder string
	day    string
	f      *os.File
	now    func() time.Time
}

func openFileSink(folder string, now func() time.Time) (*fileSink, error) {
	s := &fileSink{folder: folder, now: now}
	if err := s.rotate(now()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileSink) Name() string { return SinkFile }

// Path returns the file currently written to.
func (s *fileSink) Path() string {
	return filepath.Join(s.folder, s.day+".log")
}

func (s *fileSink) WriteLine(line string) error {
	if err := s.rotate(s.now()); err != nil {
		return err
	}
	_, err := s.f.WriteString(line)
	return err
}

// Tick rolls the file over on idle cycles so a new day's file appears even
// when nothing is logged across midnight.
func (s *fileSink) Tick(now time.Time) error {
	return s.rotate(now)
}

func (s *fileSink) rotate(now time.Time) error {
	day := now.UTC().Format(fileDayFormat)
	if s.f != nil && day == s.day {
		return nil
	}

	path := filepath.Join(s.folder, day+".log")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	if s.f != nil {
		// The old file has no pending data; a close error cannot lose lines
		_ = s.f.Close()
	}
	s.f = f
	s.day = day
	return nil
}

func (s *fileSink) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}
