package shayari

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Emoji identifies one of the five reaction counters.
type Emoji int

const (
	Heart Emoji = iota
	Fire
	Wilted
	Clap
	ThumbsDown
)

// AllEmojis lists the counters in display order.
var AllEmojis = []Emoji{Heart, Fire, Wilted, Clap, ThumbsDown}

var symbols = [...]string{
	Heart:      "❤️",
	Fire:       "🔥",
	Wilted:     "🥀",
	Clap:       "👏",
	ThumbsDown: "👎",
}

// Symbol is the emoji as stored and rendered. It is also the BSON field
// name under reactions.
func (e Emoji) Symbol() string {
	if e < 0 || int(e) >= len(symbols) {
		return ""
	}
	return symbols[e]
}

func (e Emoji) String() string { return e.Symbol() }

// ParseEmoji maps a client-supplied symbol onto an Emoji. The trailing
// variation selector U+FE0F is optional.
func ParseEmoji(s string) (Emoji, bool) {
	key := canonical(s)
	if key == "" {
		return 0, false
	}
	for _, e := range AllEmojis {
		if canonical(symbols[e]) == key {
			return e, true
		}
	}
	return 0, false
}

func canonical(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "\ufe0f", "")
}

// Reactions holds one non-negative counter per emoji.
type Reactions struct {
	Heart      int64 `bson:"❤️"`
	Fire       int64 `bson:"🔥"`
	Wilted     int64 `bson:"🥀"`
	Clap       int64 `bson:"👏"`
	ThumbsDown int64 `bson:"👎"`
}

func (r *Reactions) counter(e Emoji) *int64 {
	switch e {
	case Heart:
		return &r.Heart
	case Fire:
		return &r.Fire
	case Wilted:
		return &r.Wilted
	case Clap:
		return &r.Clap
	case ThumbsDown:
		return &r.ThumbsDown
	}
	return nil
}

func (r Reactions) Get(e Emoji) int64 {
	if p := r.counter(e); p != nil {
		return *p
	}
	return 0
}

// Add increments the counter for e by n.
func (r *Reactions) Add(e Emoji, n int64) {
	if p := r.counter(e); p != nil {
		*p += n
	}
}

// MarshalJSON writes every counter, keyed by symbol, in AllEmojis order.
func (r Reactions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range AllEmojis {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Symbol())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(r.Get(e), 10))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Reactions) UnmarshalJSON(b []byte) error {
	var m map[string]int64
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var out Reactions
	for k, v := range m {
		e, ok := ParseEmoji(k)
		if !ok {
			return fmt.Errorf("unknown reaction %q", k)
		}
		if v < 0 {
			return fmt.Errorf("negative count for %q", k)
		}
		*out.counter(e) = v
	}
	*r = out
	return nil
}
