// Package video implements the pixel pipeline: the scanline mode FSM,
// the 384-tile 2bpp decode cache, the 40-entry OAM object table, the
// background/window/object compositor, and the four fixed-shade
// palettes. Grounded on gpu.rs: tile-cache re-decode on VRAM write and
// object re-decode on OAM write follow write_vram/write_oam's shape;
// the mode-duration constants and per-scanline compositor logic are
// carried over and extended with window rendering and the full set of
// STAT interrupt sources.
package video

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	vramSize = 0x2000
	oamSize  = 0xA0
	numTiles = 384
	numObjs  = 40

	oamScanCycles  = 80
	vramXferCycles = 172
	hblankCycles   = 204
	vblankLine     = 456
)

// Mode is the pixel pipeline's current scanline phase.
type Mode int

const (
	ModeHBlank Mode = iota
	ModeVBlank
	ModeOAMScan
	ModeVRAMTransfer
)

// modeBits is the 2-bit STAT mode code for each Mode (0xFF41 bits 0-1).
var modeBits = map[Mode]byte{
	ModeHBlank: 0, ModeVBlank: 1, ModeOAMScan: 2, ModeVRAMTransfer: 3,
}

// Shade is one of the four fixed grayscale intensities a palette entry
// maps to.
type Shade byte

const (
	ShadeWhite     Shade = 255
	ShadeLightGray Shade = 192
	ShadeDarkGray  Shade = 96
	ShadeBlack     Shade = 0
)

var shadeTable = [4]Shade{ShadeWhite, ShadeLightGray, ShadeDarkGray, ShadeBlack}

// Palette is four 2-bit entries, each mapping a 2bpp pixel value (0-3)
// to one of the four fixed shades.
type Palette [4]Shade

// decodePalette unpacks a palette register byte LSB-first.
func decodePalette(v byte) Palette {
	var p Palette
	for i := 0; i < 4; i++ {
		p[i] = shadeTable[(v>>uint(i*2))&0x03]
	}
	return p
}

// object is one decoded OAM entry. Field names and the -16/-8 position
// offset follow the original's ObjectData (gpu.rs).
type object struct {
	y, x       int16
	tile       byte
	bgPriority bool // true: BG color 1-3 draws over this object
	flipX      bool
	flipY      bool
	palette    int // 0 or 1, selecting OBJ0Palette/OBJ1Palette
}

// Video is the pixel pipeline: VRAM/OAM storage, the decoded caches
// built from it, the mode FSM, and the compositor.
type Video struct {
	vram [vramSize]byte
	oam  [oamSize]byte

	tiles   [numTiles][8][8]byte // decoded 2bpp pixel values, 0-3
	objects [numObjs]object

	Framebuffer []byte // ScreenWidth*ScreenHeight*4, RGBA8 row-major

	mode       Mode
	cycleAccum int

	lcdEnabled        bool
	windowTileMapHigh bool // false: 0x9800, true: 0x9C00
	windowEnabled     bool
	bgWindowUnsigned  bool // tile data addressing mode, LCDC bit 4
	bgTileMapHigh     bool // false: 0x9800, true: 0x9C00
	objSize16         bool
	objEnabled        bool
	bgEnabled         bool

	lycEnable     bool
	oamEnable     bool
	vblankEnable  bool
	hblankEnable  bool
	lycCoincident bool

	ly, lyc   byte
	scy, scx  byte
	wy, wx    byte
	bgp       Palette
	obp0      Palette
	obp1      Palette
}

// New returns a Video with the LCD off and an all-zero framebuffer.
func New() *Video {
	return &Video{Framebuffer: make([]byte, ScreenWidth*ScreenHeight*4)}
}

// ReadVRAM/WriteVRAM operate on an address already relative to 0x8000.
func (v *Video) ReadVRAM(addr uint16) byte { return v.vram[addr] }

func (v *Video) WriteVRAM(addr uint16, val byte) {
	v.vram[addr] = val
	if addr >= 0x1800 {
		return // tile-map area, not tile data; nothing to re-decode
	}
	v.decodeTileRow(addr)
}

// decodeTileRow re-derives one 8-pixel tile row from its 2-byte pair in
// VRAM, mirroring the original's write_vram normalization.
func (v *Video) decodeTileRow(addr uint16) {
	base := addr &^ 1
	lo := v.vram[base]
	hi := v.vram[base+1]
	tileIndex := base / 16
	rowIndex := (base % 16) / 2
	for px := 0; px < 8; px++ {
		mask := byte(1) << uint(7-px)
		bit0 := lo&mask != 0
		bit1 := hi&mask != 0
		var val byte
		switch {
		case bit0 && bit1:
			val = 3
		case !bit0 && bit1:
			val = 2
		case bit0 && !bit1:
			val = 1
		default:
			val = 0
		}
		v.tiles[tileIndex][rowIndex][px] = val
	}
}

func (v *Video) ReadOAM(addr uint16) byte { return v.oam[addr] }

func (v *Video) WriteOAM(addr uint16, val byte) {
	v.oam[addr] = val
	idx := int(addr) / 4
	if idx >= numObjs {
		return
	}
	obj := &v.objects[idx]
	switch addr % 4 {
	case 0:
		obj.y = int16(val) - 0x10
	case 1:
		obj.x = int16(val) - 0x08
	case 2:
		obj.tile = val
	case 3:
		obj.palette = 0
		if val&0x10 != 0 {
			obj.palette = 1
		}
		obj.flipX = val&0x20 != 0
		obj.flipY = val&0x40 != 0
		obj.bgPriority = val&0x80 != 0
	}
}

func (v *Video) ReadLCDC() byte {
	var b byte
	if v.bgEnabled {
		b |= 0x01
	}
	if v.objEnabled {
		b |= 0x02
	}
	if v.objSize16 {
		b |= 0x04
	}
	if v.bgTileMapHigh {
		b |= 0x08
	}
	if v.bgWindowUnsigned {
		b |= 0x10
	}
	if v.windowEnabled {
		b |= 0x20
	}
	if v.windowTileMapHigh {
		b |= 0x40
	}
	if v.lcdEnabled {
		b |= 0x80
	}
	return b
}

func (v *Video) WriteLCDC(b byte) {
	v.bgEnabled = b&0x01 != 0
	v.objEnabled = b&0x02 != 0
	v.objSize16 = b&0x04 != 0
	v.bgTileMapHigh = b&0x08 != 0
	v.bgWindowUnsigned = b&0x10 != 0
	v.windowEnabled = b&0x20 != 0
	v.windowTileMapHigh = b&0x40 != 0
	wasEnabled := v.lcdEnabled
	v.lcdEnabled = b&0x80 != 0
	if v.lcdEnabled != wasEnabled {
		v.ly = 0
		v.mode = ModeOAMScan
		v.cycleAccum = 0
	}
}

func (v *Video) ReadSTAT() byte {
	b := byte(0x80) | modeBits[v.mode]
	if v.lycCoincident {
		b |= 0x04
	}
	if v.hblankEnable {
		b |= 0x08
	}
	if v.vblankEnable {
		b |= 0x10
	}
	if v.oamEnable {
		b |= 0x20
	}
	if v.lycEnable {
		b |= 0x40
	}
	return b
}

func (v *Video) WriteSTAT(b byte) {
	v.hblankEnable = b&0x08 != 0
	v.vblankEnable = b&0x10 != 0
	v.oamEnable = b&0x20 != 0
	v.lycEnable = b&0x40 != 0
}

func (v *Video) ReadSCY() byte     { return v.scy }
func (v *Video) WriteSCY(b byte)   { v.scy = b }
func (v *Video) ReadSCX() byte     { return v.scx }
func (v *Video) WriteSCX(b byte)   { v.scx = b }
func (v *Video) ReadLY() byte      { return v.ly }
func (v *Video) ReadLYC() byte     { return v.lyc }
func (v *Video) WriteLYC(b byte)   { v.lyc = b }
func (v *Video) ReadWY() byte      { return v.wy }
func (v *Video) WriteWY(b byte)    { v.wy = b }
func (v *Video) ReadWX() byte      { return v.wx }
func (v *Video) WriteWX(b byte)    { v.wx = b }

func (v *Video) ReadBGP() byte   { return packPalette(v.bgp) }
func (v *Video) WriteBGP(b byte) { v.bgp = decodePalette(b) }
func (v *Video) ReadOBP0() byte  { return packPalette(v.obp0) }
func (v *Video) WriteOBP0(b byte) { v.obp0 = decodePalette(b) }
func (v *Video) ReadOBP1() byte  { return packPalette(v.obp1) }
func (v *Video) WriteOBP1(b byte) { v.obp1 = decodePalette(b) }

func packPalette(p Palette) byte {
	var b byte
	for i, shade := range p {
		for idx, s := range shadeTable {
			if s == shade {
				b |= byte(idx) << uint(i*2)
			}
		}
	}
	return b
}

// Step advances the pipeline by cycles, returning whether the V-blank
// IF bit and/or the LCD-stat IF bit should be asserted; the bus merges
// these into IF.
func (v *Video) Step(cycles int) (vblankIRQ, statIRQ bool) {
	if !v.lcdEnabled {
		return false, false
	}
	v.cycleAccum += cycles
	for {
		switch v.mode {
		case ModeOAMScan:
			if v.cycleAccum < oamScanCycles {
				return vblankIRQ, statIRQ
			}
			v.cycleAccum -= oamScanCycles
			v.mode = ModeVRAMTransfer

		case ModeVRAMTransfer:
			if v.cycleAccum < vramXferCycles {
				return vblankIRQ, statIRQ
			}
			v.cycleAccum -= vramXferCycles
			v.renderScanline()
			v.mode = ModeHBlank
			if v.hblankEnable {
				statIRQ = true
			}

		case ModeHBlank:
			if v.cycleAccum < hblankCycles {
				return vblankIRQ, statIRQ
			}
			v.cycleAccum -= hblankCycles
			v.ly++
			if v.checkLYC() {
				statIRQ = true
			}
			if v.ly >= 144 {
				v.mode = ModeVBlank
				vblankIRQ = true
				if v.vblankEnable {
					statIRQ = true
				}
			} else {
				v.mode = ModeOAMScan
				if v.oamEnable {
					statIRQ = true
				}
			}

		case ModeVBlank:
			if v.cycleAccum < vblankLine {
				return vblankIRQ, statIRQ
			}
			v.cycleAccum -= vblankLine
			v.ly++
			if v.checkLYC() {
				statIRQ = true
			}
			if v.ly == 154 {
				v.ly = 0
				v.mode = ModeOAMScan
				if v.checkLYC() {
					statIRQ = true
				}
				if v.oamEnable {
					statIRQ = true
				}
			}
		}
	}
}

func (v *Video) checkLYC() bool {
	v.lycCoincident = v.ly == v.lyc
	return v.lycCoincident && v.lycEnable
}

// renderScanline composites the background, window, and objects for
// the current LY into the framebuffer.
func (v *Video) renderScanline() {
	if int(v.ly) >= ScreenHeight {
		return
	}
	var bgIndex [ScreenWidth]byte

	if v.bgEnabled {
		v.renderBackground(&bgIndex)
	}
	if v.windowEnabled {
		v.renderWindow(&bgIndex)
	}
	if v.objEnabled {
		v.renderObjects(&bgIndex)
	}
}

func (v *Video) renderBackground(bgIndex *[ScreenWidth]byte) {
	mapBase := uint16(0x1800) // 0x9800 - 0x8000
	if v.bgTileMapHigh {
		mapBase = 0x1C00
	}
	tileY := v.ly + v.scy // byte addition wraps mod 256
	rowInTile := tileY % 8

	for x := 0; x < ScreenWidth; x++ {
		tileX := byte(x) + v.scx // byte addition wraps mod 256
		mapOffset := mapBase + uint16(tileY/8)*32 + uint16(tileX/8)
		tileIdx := v.resolveTileIndex(v.vram[mapOffset])
		val := v.tiles[tileIdx][rowInTile][tileX%8]
		bgIndex[x] = val
		v.writePixel(x, int(v.ly), v.bgp[val])
	}
}

// renderWindow draws the window layer where it overlaps the current
// scanline; WX is stored with the usual +7 hardware offset.
func (v *Video) renderWindow(bgIndex *[ScreenWidth]byte) {
	if v.ly < v.wy {
		return
	}
	winX0 := int(v.wx) - 7
	if winX0 >= ScreenWidth {
		return
	}
	mapBase := uint16(0x1800)
	if v.windowTileMapHigh {
		mapBase = 0x1C00
	}
	winY := v.ly - v.wy
	rowInTile := winY % 8

	for x := winX0; x < ScreenWidth; x++ {
		if x < 0 {
			continue
		}
		winX := uint16(x - winX0)
		mapOffset := mapBase + uint16(winY/8)*32 + winX/8
		tileIdx := v.resolveTileIndex(v.vram[mapOffset])
		val := v.tiles[tileIdx][rowInTile][winX%8]
		bgIndex[x] = val
		v.writePixel(x, int(v.ly), v.bgp[val])
	}
}

// resolveTileIndex applies the unsigned/signed tile-data addressing
// rule (LCDC bit 4) to a raw tile-map byte.
func (v *Video) resolveTileIndex(raw byte) int {
	if v.bgWindowUnsigned {
		return int(raw)
	}
	return 256 + int(int8(raw))
}

func (v *Video) renderObjects(bgIndex *[ScreenWidth]byte) {
	height := int16(8)
	if v.objSize16 {
		height = 16
	}
	line := int16(v.ly)

	for i := range v.objects {
		obj := &v.objects[i]
		if line < obj.y || line >= obj.y+height {
			continue
		}
		rowOffset := line - obj.y
		if obj.flipY {
			rowOffset = height - 1 - rowOffset
		}
		tileIndex := int(obj.tile)
		if height == 16 {
			tileIndex &^= 1
			tileIndex += int(rowOffset / 8)
			rowOffset %= 8
		}
		row := v.tiles[tileIndex][rowOffset]

		palette := v.obp0
		if obj.palette == 1 {
			palette = v.obp1
		}

		for px := 0; px < 8; px++ {
			screenX := int(obj.x) + px
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			srcPx := px
			if obj.flipX {
				srcPx = 7 - px
			}
			val := row[srcPx]
			if val == 0 {
				continue
			}
			if obj.bgPriority && bgIndex[screenX] != 0 {
				continue
			}
			v.writePixel(screenX, int(v.ly), palette[val])
		}
	}
}

func (v *Video) writePixel(x, y int, shade Shade) {
	offset := (y*ScreenWidth + x) * 4
	v.Framebuffer[offset] = byte(shade)
	v.Framebuffer[offset+1] = byte(shade)
	v.Framebuffer[offset+2] = byte(shade)
	v.Framebuffer[offset+3] = 255
}
