package pattern

// rows builds a mask from three row strings, top to bottom. Any character
// other than '.' lights the cell.
func rows(top, mid, bot string) Mask {
	var m Mask
	for y, r := range [3]string{top, mid, bot} {
		for x := 0; x < 3; x++ {
			if r[x] != '.' {
				m |= 1 << uint(x*3+(2-y))
			}
		}
	}
	return m
}

// font holds one 3x3 glyph per letter A..Z. At this resolution some
// letters are barely telling, it is a badge after all.
var font = [26]Mask{
	rows(".#.", "###", "#.#"), // A
	rows("##.", "###", "###"), // B
	rows("###", "#..", "###"), // C
	rows("##.", "#.#", "##."), // D
	rows("###", "##.", "###"), // E
	rows("###", "##.", "#.."), // F
	rows("##.", "#.#", "###"), // G
	rows("#.#", "###", "#.#"), // H
	rows(".#.", ".#.", ".#."), // I
	rows("..#", "..#", "###"), // J
	rows("#.#", "##.", "#.#"), // K
	rows("#..", "#..", "###"), // L
	rows("###", "###", "#.#"), // M
	rows("##.", "#.#", "#.#"), // N
	rows("###", "#.#", "###"), // O
	rows("###", "###", "#.."), // P
	rows("###", "#.#", ".##"), // Q
	rows("##.", "##.", "#.#"), // R
	rows(".##", ".#.", "##."), // S
	rows("###", ".#.", ".#."), // T
	rows("#.#", "#.#", "###"), // U
	rows("#.#", "#.#", ".#."), // V
	rows("#.#", "###", "###"), // W
	rows("#.#", ".#.", "#.#"), // X
	rows("#.#", ".#.", ".#."), // Y
	rows("###", ".#.", "###"), // Z
}

// Glyph returns the mask for a letter. Lowercase input is uppercased,
// anything outside A..Z yields the zero mask.
func Glyph(ch byte) Mask {
	if ch >= 'a' && ch <= 'z' {
		ch -= 'a' - 'A'
	}
	if ch < 'A' || ch > 'Z' {
		return 0
	}
	return font[ch-'A']
}
