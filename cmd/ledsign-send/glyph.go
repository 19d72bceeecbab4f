package main

import (
	"os"
	"unicode/utf8"

	"github.com/go-errors/errors"
	"github.com/golang/freetype/truetype"
	"github.com/spf13/cobra"

	"github.com/BeatGlow/ledsign/glyph"
	"github.com/BeatGlow/ledsign/protocol"
)

func init() {
	glyphCmd.Flags().StringVar(&glyphRuneFlag, `rune`, ``, `render this character instead of taking rows`)
	glyphCmd.Flags().StringVar(&glyphFontFlag, `ttf`, ``, `TrueType font for --rune (default: Go Regular)`)
	glyphCmd.Flags().Float64Var(&glyphSizeFlag, `size`, 8, `font size in pixels for --rune`)
	rootCmd.AddCommand(glyphCmd)
}

var (
	glyphRuneFlag string
	glyphFontFlag string
	glyphSizeFlag float64
)

var glyphCmd = &cobra.Command{
	Use:   "glyph <index> [row]...",
	Short: `replace the bitmap of a control code`,
	Long:  `replace the bitmap of control code 0-31 with up to 8 rows, leftmost pixel in bit 7, or with a rendered character`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseByte(args[0])
		if err != nil {
			return err
		}

		var rows []byte
		if glyphRuneFlag != "" {
			if len(args) > 1 {
				return errors.New("rows and --rune are mutually exclusive")
			}
			b, err := renderRune(glyphRuneFlag)
			if err != nil {
				return err
			}
			rows = b[:]
		} else {
			if len(args) > 1+glyph.Height {
				return errors.Errorf("at most %d rows", glyph.Height)
			}
			for _, arg := range args[1:] {
				row, err := parseByte(arg)
				if err != nil {
					return err
				}
				rows = append(rows, row)
			}
		}

		frame, err := protocol.EncodeSetCharacter(index, rows)
		if err != nil {
			return err
		}
		return send(cmd, frame)
	},
}

func renderRune(s string) (glyph.Bitmap, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return glyph.Bitmap{}, errors.Errorf("--rune needs exactly one character, got %q", s)
	}

	var (
		f   *truetype.Font
		err error
	)
	if glyphFontFlag != "" {
		var ttf []byte
		if ttf, err = os.ReadFile(glyphFontFlag); err != nil {
			return glyph.Bitmap{}, errors.WrapPrefix(err, "read font", 0)
		}
		f, err = glyph.ParseFont(ttf)
	} else {
		f, err = glyph.DefaultFont()
	}
	if err != nil {
		return glyph.Bitmap{}, err
	}
	return glyph.Rasterize(f, glyphSizeFlag, r)
}
