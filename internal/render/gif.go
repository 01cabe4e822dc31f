package render

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"time"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"
)

// Assemble packs rendered frames into a looping GIF at the given
// frame rate. GIF delays are in hundredths of a second, so rates
// above 100 fps are clamped.
func Assemble(frames []*image.Paletted, fps int) (*gif.GIF, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to assemble")
	}

	if fps < 1 {
		fps = 1
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}

	anim := &gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return anim, nil
}

// Save encodes the animation and writes it atomically, so an existing
// file is never left truncated by a failed render.
func Save(path string, anim *gif.GIF) error {
	start := time.Now()

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Int("frames", len(anim.Image)).
		Int("bytes", buf.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("gif written")
	return nil
}
