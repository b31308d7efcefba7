package jpegcore

// scanComponent is one component selector within a single SOS segment, with
// the Huffman table selectors chosen for this scan.
type scanComponent struct {
	compIdx    int
	dcSel, acSel int
}

func (d *Decoder) parseSOS() {
	if !d.sofSeen {
		d.fail(KindMissingSof, "SOS before any SOF segment")
	}

	payload := d.readSegment()
	if len(payload) < 1 {
		d.fail(KindBadSosParams, "short SOS header")
	}

	ns := int(payload[0])
	if len(payload) != 1+2*ns+3 {
		d.fail(KindBadSosParams, "SOS length mismatch for %d components", ns)
	}

	if ns < 1 || ns > 4 {
		d.fail(KindBadSosParams, "bad scan component count %d", ns)
	}

	scanComps := make([]scanComponent, ns)
	used := make([]bool, d.numComponents)
	sumHV := 0

	for i := 0; i < ns; i++ {
		cs := payload[1+2*i]
		tdta := payload[1+2*i+1]

		idx := -1
		for j := 0; j < d.numComponents; j++ {
			if d.comps[j].id == cs {
				idx = j
				break
			}
		}

		if idx < 0 {
			d.fail(KindBadSosParams, "scan selector %d not present in SOF", cs)
		}

		if used[idx] {
			d.fail(KindBadSosParams, "repeated scan component selector %d", cs)
		}
		used[idx] = true

		td := int(tdta >> 4)
		ta := int(tdta & 0x0F)
		if td > 3 || ta > 3 {
			d.fail(KindBadSosParams, "bad Td/Ta %d/%d", td, ta)
		}

		d.comps[idx].dcTabSel = td
		d.comps[idx].acTabSel = ta
		scanComps[i] = scanComponent{compIdx: idx, dcSel: td, acSel: ta}
		sumHV += d.comps[idx].hFactor * d.comps[idx].vFactor
	}

	if ns > 1 && sumHV > 10 {
		d.fail(KindBadSosParams, "sum H*V %d exceeds 10", sumHV)
	}

	zigStart := int(payload[1+2*ns])
	zigEnd := int(payload[1+2*ns+1])
	ahAl := payload[1+2*ns+2]
	ah := int(ahAl >> 4)
	al := int(ahAl & 0x0F)

	if zigStart < 0 || zigStart > 63 || zigEnd < zigStart || zigEnd > 63 {
		d.fail(KindBadSosParams, "bad spectral selection %d..%d", zigStart, zigEnd)
	}

	if !d.isProgressive {
		if zigStart != 0 || zigEnd != 63 || ah != 0 || al != 0 {
			d.fail(KindBadSosParams, "baseline scan must cover 0..63 with Ah=Al=0")
		}
	} else {
		if zigStart == 0 && zigEnd != 0 {
			d.fail(KindBadSosParams, "DC band must have Se=0")
		}

		if zigStart > 0 && ns != 1 {
			d.fail(KindBadSosParams, "AC scans must be non-interleaved")
		}

		if ah != 0 && ah != al+1 {
			d.fail(KindBadSosParams, "Ah must be 0 or Al+1")
		}
	}

	d.sosSeen = true

	if d.planes == nil {
		d.planes = newPlaneStore(d.comps[:d.numComponents], d.mxx*8*d.hMax, d.myy*8*d.vMax, d.hMax, d.vMax)
		d.planes.mode = d.upsampleMode
	}

	d.bits.reset()
	d.eobRun = 0

	for i := 0; i < d.numComponents; i++ {
		d.comps[i].dcPred = 0
	}

	d.decodeScan(scanComps, zigStart, zigEnd, ah, al)
}

// decodeScan walks the MCU (or, for non-interleaved scans, block) grid,
// decoding one block at a time and handling restart markers at the
// configured interval. Interleaved vs. non-interleaved traversal per §4.5.
func (d *Decoder) decodeScan(scanComps []scanComponent, zigStart, zigEnd, ah, al int) {
	restartExpect := 0
	unitsDone := 0

	if len(scanComps) == 1 {
		sc := scanComps[0]
		comp := &d.comps[sc.compIdx]

		blocksX := d.mxx * comp.hFactor
		blocksY := d.myy * comp.vFactor
		totalUnits := blocksX * blocksY

		compW := (d.widthG*comp.hFactor + d.hMax - 1) / d.hMax
		compH := (d.heightG*comp.vFactor + d.vMax - 1) / d.vMax
		boundBX := (compW + 7) / 8
		boundBY := (compH + 7) / 8

		handleUnit := func() {
			unitsDone++
			// No restart marker follows the scan's very last unit: the
			// entropy-coded segment is immediately followed by the next
			// marker (another SOS, DNL, or EOI), never an RSTn.
			if d.restartInterval > 0 && unitsDone%d.restartInterval == 0 && unitsDone < totalUnits {
				d.checkRestart(restartExpect)
				restartExpect = (restartExpect + 1) % 8
			}
		}

		for by := 0; by < blocksY; by++ {
			for bx := 0; bx < blocksX; bx++ {
				inBounds := bx < boundBX && by < boundBY
				d.decodeOneBlock(sc, bx, by, zigStart, zigEnd, ah, al, inBounds)
				handleUnit()
			}
		}

		return
	}

	totalUnits := d.mxx * d.myy

	handleUnit := func() {
		unitsDone++
		if d.restartInterval > 0 && unitsDone%d.restartInterval == 0 && unitsDone < totalUnits {
			d.checkRestart(restartExpect)
			restartExpect = (restartExpect + 1) % 8
		}
	}

	for my := 0; my < d.myy; my++ {
		for mx := 0; mx < d.mxx; mx++ {
			for _, sc := range scanComps {
				comp := &d.comps[sc.compIdx]

				for v := 0; v < comp.vFactor; v++ {
					for h := 0; h < comp.hFactor; h++ {
						bx := mx*comp.hFactor + h
						by := my*comp.vFactor + v
						d.decodeOneBlock(sc, bx, by, zigStart, zigEnd, ah, al, true)
					}
				}
			}

			handleUnit()
		}
	}
}

// blockCoeffsSlice returns the 64-entry zig-zag-ordered coefficient slice
// backing one block: the per-decoder scratch array for baseline (consumed
// immediately), or a view into the per-component progressive store, kept
// across scans until the final scan dequantizes and transforms it.
func (d *Decoder) blockCoeffsSlice(ci int, blockIdx int) []int32 {
	if !d.isProgressive {
		for i := range d.scratch {
			d.scratch[i] = 0
		}

		return d.scratch[:]
	}

	base := blockIdx * 64

	return d.progCoeffs[ci][base : base+64]
}

func (d *Decoder) decodeOneBlock(sc scanComponent, bx, by, zigStart, zigEnd, ah, al int, inBounds bool) {
	comp := &d.comps[sc.compIdx]
	blockIdx := by*d.mxx*comp.hFactor + bx
	coeffs := d.blockCoeffsSlice(sc.compIdx, blockIdx)

	switch {
	case !d.isProgressive:
		d.decodeBaselineBlock(comp, coeffs)
		if inBounds {
			d.storeBlock(sc.compIdx, bx, by, coeffs)
		}
	case ah == 0:
		d.decodeProgressiveFirst(comp, coeffs, zigStart, zigEnd, al)
	default:
		d.decodeProgressiveRefine(comp, coeffs, zigStart, zigEnd, al)
	}
}

func (d *Decoder) decodeBaselineBlock(comp *component, coeffs []int32) {
	dcTable := d.dcTables[comp.dcTabSel]
	acTable := d.acTables[comp.acTabSel]

	if dcTable == nil || acTable == nil {
		d.fail(KindBadSosParams, "scan references an undefined Huffman table")
	}

	t := d.decodeHuffman(dcTable)
	if t > 16 {
		d.fail(KindExcessiveDc, "DC magnitude category %d", t)
	}

	diff := d.bits.receiveExtend(t)
	comp.dcPred += diff
	coeffs[0] = comp.dcPred

	zig := 1
	for zig <= 63 {
		rs := d.decodeHuffman(acTable)
		r := rs >> 4
		s := rs & 0x0F

		if s == 0 {
			if r == 15 {
				zig += 16
				continue
			}

			break
		}

		zig += r
		if zig > 63 {
			d.fail(KindTooManyCoefficients, "AC run past end of block")
		}

		coeffs[zig] = d.bits.receiveExtend(s)
		zig++
	}
}

func (d *Decoder) decodeProgressiveFirst(comp *component, coeffs []int32, zigStart, zigEnd, al int) {
	if zigStart == 0 {
		dcTable := d.dcTables[comp.dcTabSel]
		if dcTable == nil {
			d.fail(KindBadSosParams, "scan references an undefined DC table")
		}

		t := d.decodeHuffman(dcTable)
		if t > 16 {
			d.fail(KindExcessiveDc, "DC magnitude category %d", t)
		}

		diff := d.bits.receiveExtend(t)
		comp.dcPred += diff
		coeffs[0] = comp.dcPred << uint(al)

		return
	}

	if d.eobRun > 0 {
		d.eobRun--
		return
	}

	acTable := d.acTables[comp.acTabSel]
	if acTable == nil {
		d.fail(KindBadSosParams, "scan references an undefined AC table")
	}

	zig := zigStart
	for zig <= zigEnd {
		rs := d.decodeHuffman(acTable)
		r := rs >> 4
		s := rs & 0x0F

		if s == 0 {
			if r == 15 {
				zig += 16
				continue
			}

			eobBits := d.bits.decodeBits(r)
			d.eobRun = (1 << uint(r)) + int(eobBits)
			d.eobRun--

			return
		}

		zig += r
		if zig > zigEnd {
			d.fail(KindTooManyCoefficients, "AC run past zigEnd in progressive first pass")
		}

		coeffs[zig] = d.bits.receiveExtend(s) << uint(al)
		zig++
	}
}

// decodeProgressiveRefine implements the successive-approximation AC/DC
// refinement pass: DC refinement ORs in one bit; AC refinement walks
// existing nonzero coefficients, nudging each by one refinement bit while
// placing newly-significant coefficients at the positions named by the
// r,s Huffman symbols, per T.81 G.1.2.3.
func (d *Decoder) decodeProgressiveRefine(comp *component, coeffs []int32, zigStart, zigEnd, al int) {
	delta := int32(1) << uint(al)

	if zigStart == 0 {
		if d.bits.decodeBit() != 0 {
			coeffs[0] |= delta
		}

		return
	}

	acTable := d.acTables[comp.acTabSel]
	if acTable == nil {
		d.fail(KindBadSosParams, "scan references an undefined AC table")
	}

	k := zigStart

	refineAt := func(pos int) {
		if coeffs[pos] == 0 {
			return
		}

		if d.bits.decodeBit() != 0 {
			if coeffs[pos] >= 0 {
				coeffs[pos] += delta
			} else {
				coeffs[pos] -= delta
			}
		}
	}

	if d.eobRun == 0 {
		for k <= zigEnd {
			rs := d.decodeHuffman(acTable)
			r := int(rs >> 4)
			s := rs & 0x0F

			var newVal int32
			hasNew := false

			switch s {
			case 0:
				if r != 15 {
					eobBits := d.bits.decodeBits(r)
					d.eobRun = (1 << uint(r)) + int(eobBits)
				}
			case 1:
				if d.bits.decodeBit() != 0 {
					newVal = delta
				} else {
					newVal = -delta
				}

				hasNew = true
			default:
				d.fail(KindUnexpectedHuffmanCode, "unexpected AC refinement symbol s=%d", s)
			}

			// An end-of-band symbol places nothing; the eobRun pass below
			// refines the rest of this block's nonzero coefficients.
			if s == 0 && r != 15 {
				break
			}

			for {
				if k > zigEnd {
					d.fail(KindTooManyCoefficients, "AC refinement run past zigEnd")
				}

				if coeffs[k] != 0 {
					refineAt(k)
				} else {
					if r == 0 {
						if hasNew {
							coeffs[k] = newVal
						}

						k++

						break
					}

					r--
				}

				k++
			}
		}
	}

	if d.eobRun > 0 {
		for ; k <= zigEnd; k++ {
			refineAt(k)
		}

		d.eobRun--
	}
}

func (d *Decoder) storeBlock(ci, bx, by int, coeffs []int32) {
	comp := &d.comps[ci]

	qt := d.quant[comp.quantSel]
	if qt == nil {
		d.fail(KindBadQuantTable, "scan references an undefined quant table")
	}

	var zz [64]int32
	copy(zz[:], coeffs)

	var natural [64]int32
	qt.dequantize(&zz, &natural)

	p := d.planes.planes[ci]
	idct8x8(&natural, p.pix, by*8*p.stride+bx*8, p.stride)
}

// checkRestart validates and consumes an expected RST marker, then resets
// per-scan decode state. Restart bytes are read raw (never through the
// stuffed/bit layer, since RST markers are never stuffed) via nextRawByte,
// which drains any byte still sitting unconsumed in the bit accumulator
// before pulling fresh bytes from the byte source.
func (d *Decoder) checkRestart(expect int) {
	d.bits.byteAlign()

	b0, err := d.bits.nextRawByte()
	if err != nil {
		d.fail(KindBadRestart, "reading restart marker: %v", err)
	}

	b1, err := d.bits.nextRawByte()
	if err != nil {
		d.fail(KindBadRestart, "reading restart marker: %v", err)
	}

	if b0 != 0xFF || b1 != byte(markerRST0+expect) {
		d.fail(KindBadRestart, "expected RST%d, got %02X%02X", expect, b0, b1)
	}

	d.bits.reset()
	d.eobRun = 0

	for i := 0; i < d.numComponents; i++ {
		d.comps[i].dcPred = 0
	}
}

func (d *Decoder) finishProgressive() {
	for ci := 0; ci < d.numComponents; ci++ {
		comp := &d.comps[ci]

		qt := d.quant[comp.quantSel]
		if qt == nil {
			d.fail(KindBadQuantTable, "scan references an undefined quant table")
		}

		blocksX := d.mxx * comp.hFactor
		blocksY := d.myy * comp.vFactor
		p := d.planes.planes[ci]

		for by := 0; by < blocksY; by++ {
			for bx := 0; bx < blocksX; bx++ {
				blockIdx := by*blocksX + bx
				base := blockIdx * 64

				var zz [64]int32
				copy(zz[:], d.progCoeffs[ci][base:base+64])

				var natural [64]int32
				qt.dequantize(&zz, &natural)

				idct8x8(&natural, p.pix, by*8*p.stride+bx*8, p.stride)
			}
		}
	}

	d.renderOutput()
}

// renderOutput runs the color converter (§4.7) over the decoded planes and
// delivers the final RGBA buffer to the pixel sink. Row conversion is
// independent per §5 and could be parallelized; it runs serially here.
func (d *Decoder) renderOutput() {
	var ids [4]byte
	for i := 0; i < d.numComponents; i++ {
		ids[i] = d.comps[i].id
	}

	model, err := pickColorModel(d.numComponents, ids, d.isJfif, d.adobeTransformValid, d.adobeTransform)
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			d.fail(de.Kind, "%s", de.Msg)
		}

		d.fail(KindUnknownColorModel, "%v", err)
	}

	width, height := d.widthG, d.heightG
	rgba := make([]byte, width*height*4)
	row := make([]byte, width*3)

	for y := 0; y < height; y++ {
		convertRow(model, d.planes, y, width, row)

		base := y * width * 4
		for x := 0; x < width; x++ {
			rgba[base+x*4+0] = row[x*3+0]
			rgba[base+x*4+1] = row[x*3+1]
			rgba[base+x*4+2] = row[x*3+2]
			rgba[base+x*4+3] = 255
		}
	}

	if d.sink != nil {
		d.sink.SetPixels(width, height, rgba)
	}
}
