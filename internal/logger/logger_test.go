/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterLevel(t *testing.T) {
	cases := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"", false, true},
		{"bogus", false, true},
	}
	for _, c := range cases {
		t.Run(c.level, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewWithWriter(&buf, c.level)
			l.Debug().Msg("dbg")
			l.Info().Msg("inf")

			out := buf.String()
			if strings.Contains(out, `"dbg"`) != c.wantDebug {
				t.Errorf("debug emitted=%v; want %v: %s", !c.wantDebug,
					c.wantDebug, out)
			}
			if strings.Contains(out, `"inf"`) != c.wantInfo {
				t.Errorf("info emitted=%v; want %v: %s", !c.wantInfo,
					c.wantInfo, out)
			}
		})
	}
}
