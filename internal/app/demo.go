package app

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

var demoPlaces = []string{
	"Lisbon", "Zürich", "東京 Tokyo", "São Paulo", "Reykjavík",
	"서울 Seoul", "Nairobi", "Kraków", "北京 Beijing", "Montréal",
	"Ōsaka 大阪", "Cusco", "Tromsø", "Hà Nội", "Marrakech",
}

// demoLines builds n numbered rows padded so their columns line up even
// with wide runes.
func demoLines(n int) []string {
	width := 0
	for _, p := range demoPlaces {
		width = max(width, runewidth.StringWidth(p))
	}
	lines := make([]string, n)
	for i := range lines {
		place := runewidth.FillRight(demoPlaces[i%len(demoPlaces)], width)
		lines[i] = fmt.Sprintf(" %4d  %s  %s", i, place, bar(i))
	}
	return lines
}

func bar(i int) string {
	n := (i*7)%24 + 1
	out := make([]rune, n)
	for j := range out {
		out[j] = '▪'
	}
	return string(out)
}
