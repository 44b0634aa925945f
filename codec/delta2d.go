package codec

// DeltaEncode2D applies the chunk's final pre-compression transform in place:
// buf is treated as a rows x cols grid and every row after the first is
// replaced by its element-wise difference from the row before it. rows == 1
// (the R == 1 case) is a no-op. Arithmetic wraps per Go's int16 semantics,
// matching the inverse applied by DeltaDecode2D.
func DeltaEncode2D(buf []int16, rows, cols int) {
	for r := rows - 1; r >= 1; r-- {
		cur := buf[r*cols : r*cols+cols]
		prev := buf[(r-1)*cols : (r-1)*cols+cols]
		for j := range cur {
			cur[j] -= prev[j]
		}
	}
}

// DeltaDecode2D reverses DeltaEncode2D, used only by this module's own tests
// to validate round-trip properties since no decoder ships here.
func DeltaDecode2D(buf []int16, rows, cols int) {
	for r := 1; r < rows; r++ {
		cur := buf[r*cols : r*cols+cols]
		prev := buf[(r-1)*cols : (r-1)*cols+cols]
		for j := range cur {
			cur[j] += prev[j]
		}
	}
}
