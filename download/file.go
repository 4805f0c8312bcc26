package download

import (
	"context"
	"fmt"
	"io"
	"os"
)

// download streams the task's source to its destination file. Writes go
// to the final path directly; a failing transfer leaves whatever bytes
// were already written, callers must treat the file of a failed task as
// untrustworthy.
func download(ctx context.Context, g getter, t Task, prg Progresser) error {
	r, total, err := g.Get(ctx, t.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	defer r.Close()

	f, err := os.Create(t.Path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	defer f.Close()

	var w io.Writer = f
	if prg != nil {
		prg.Init(total)
		w = &progressWriter{w: f, prg: prg, total: total}
	}

	if _, err = io.Copy(w, r); err != nil {
		return fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	return nil
}

// progressWriter forwards writes and reports the running byte count
type progressWriter struct {
	w     io.Writer
	prg   Progresser
	count int64
	total int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.count += int64(n)
	p.prg.Update(p.count, p.total)
	return n, err
}
