package pcd

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/zhuyie/golzf"
)

type Format int

const (
	Ascii Format = iota
	Binary
	BinaryCompressed
)

func Parse(r io.Reader) (*PointCloud, error) {
	rb := bufio.NewReader(r)
	pc := &PointCloud{}
	var format Format

L_HEADER:
	for {
		line, _, err := rb.ReadLine()
		if err != nil {
			return nil, err
		}
		args := strings.Fields(string(line))
		if len(args) < 2 {
			return nil, errors.New("header field must have value")
		}
		switch args[0] {
		case "VERSION":
			f, err := strconv.ParseFloat(args[1], 32)
			if err != nil {
				return nil, err
			}
			pc.Version = float32(f)
		case "FIELDS":
			pc.Fields = args[1:]
		case "SIZE":
			pc.Size = make([]int, len(args)-1)
			for i, s := range args[1:] {
				pc.Size[i], err = strconv.Atoi(s)
				if err != nil {
					return nil, err
				}
			}
		case "TYPE":
			pc.Type = args[1:]
		case "COUNT":
			pc.Count = make([]int, len(args)-1)
			for i, s := range args[1:] {
				pc.Count[i], err = strconv.Atoi(s)
				if err != nil {
					return nil, err
				}
			}
		case "WIDTH":
			pc.Width, err = strconv.Atoi(args[1])
			if err != nil {
				return nil, err
			}
		case "HEIGHT":
			pc.Height, err = strconv.Atoi(args[1])
			if err != nil {
				return nil, err
			}
		case "VIEWPOINT":
			pc.Viewpoint = make([]float32, len(args)-1)
			for i, s := range args[1:] {
				f, err := strconv.ParseFloat(s, 32)
				if err != nil {
					return nil, err
				}
				pc.Viewpoint[i] = float32(f)
			}
		case "POINTS":
			pc.Points, err = strconv.Atoi(args[1])
			if err != nil {
				return nil, err
			}
		case "DATA":
			switch args[1] {
			case "ascii":
				format = Ascii
			case "binary":
				format = Binary
			case "binary_compressed":
				format = BinaryCompressed
			default:
				return nil, errors.New("unknown data format")
			}
			break L_HEADER
		}
	}
	// validate
	if len(pc.Fields) != len(pc.Size) {
		return nil, errors.New("size field size is wrong")
	}
	if len(pc.Fields) != len(pc.Type) {
		return nil, errors.New("type field size is wrong")
	}
	if len(pc.Fields) != len(pc.Count) {
		return nil, errors.New("count field size is wrong")
	}

	switch format {
	case Ascii:
		stride := pc.Stride()
		pc.Data = make([]byte, stride*pc.Points)
		for p := 0; p < pc.Points; p++ {
			line, _, err := rb.ReadLine()
			if err != nil {
				return nil, err
			}
			toks := strings.Fields(string(line))
			off := p * stride
			var ti int
			for i := range pc.Fields {
				for c := 0; c < pc.Count[i]; c++ {
					if ti >= len(toks) {
						return nil, errors.New("too few values in ascii data")
					}
					if err := putField(pc.Data[off:off+pc.Size[i]], pc.Type[i], pc.Size[i], toks[ti]); err != nil {
						return nil, err
					}
					off += pc.Size[i]
					ti++
				}
			}
		}
	case Binary:
		b, err := io.ReadAll(rb)
		if err != nil {
			return nil, err
		}
		pc.Data = b
	case BinaryCompressed:
		var nCompressed, nUncompressed int32
		if err := binary.Read(rb, binary.LittleEndian, &nCompressed); err != nil {
			return nil, err
		}
		if err := binary.Read(rb, binary.LittleEndian, &nUncompressed); err != nil {
			return nil, err
		}
		if nCompressed < 0 || nUncompressed < 0 {
			return nil, errors.New("broken compressed data size")
		}

		b, err := io.ReadAll(rb)
		if err != nil {
			return nil, err
		}
		if int(nCompressed) > len(b) {
			return nil, errors.New("truncated compressed data")
		}

		dec := make([]byte, nUncompressed)
		n, err := lzf.Decompress(b[:nCompressed], dec)
		if err != nil {
			return nil, err
		}
		if int(nUncompressed) != n {
			return nil, errors.New("wrong uncompressed size")
		}

		// binary_compressed stores values field by field.
		// Reorder to point by point.
		head := make([]int, len(pc.Fields))
		offset := make([]int, len(pc.Fields))
		var pos, off int
		for i := range pc.Fields {
			head[i] = pos
			offset[i] = off
			pos += pc.Size[i] * pc.Count[i] * pc.Points
			off += pc.Size[i] * pc.Count[i]
		}

		stride := pc.Stride()
		pc.Data = make([]byte, n)
		for p := 0; p < pc.Points; p++ {
			for i := range head {
				size := pc.Size[i] * pc.Count[i]
				to := p*stride + offset[i]
				from := head[i] + p*size
				copy(pc.Data[to:to+size], dec[from:from+size])
			}
		}
	}

	return pc, nil
}

// Write serializes the point cloud in the given PCD data format.
func Write(w io.Writer, pc *PointCloud, format Format) error {
	bw := bufio.NewWriter(w)

	version := pc.Version
	if version == 0 {
		version = 0.7
	}
	viewpoint := pc.Viewpoint
	if len(viewpoint) == 0 {
		viewpoint = []float32{0, 0, 0, 1, 0, 0, 0}
	}
	width, height := pc.Width, pc.Height
	if width*height != pc.Points {
		width, height = pc.Points, 1
	}

	fmt.Fprintf(bw, "VERSION %.1f\n", version)
	fmt.Fprintf(bw, "FIELDS %s\n", strings.Join(pc.Fields, " "))
	fmt.Fprintf(bw, "SIZE %s\n", joinInts(pc.Size))
	fmt.Fprintf(bw, "TYPE %s\n", strings.Join(pc.Type, " "))
	fmt.Fprintf(bw, "COUNT %s\n", joinInts(pc.Count))
	fmt.Fprintf(bw, "WIDTH %d\n", width)
	fmt.Fprintf(bw, "HEIGHT %d\n", height)
	fmt.Fprintf(bw, "VIEWPOINT %s\n", joinFloats(viewpoint))
	fmt.Fprintf(bw, "POINTS %d\n", pc.Points)

	stride := pc.Stride()
	switch format {
	case Ascii:
		fmt.Fprintf(bw, "DATA ascii\n")
		for p := 0; p < pc.Points; p++ {
			off := p * stride
			var toks []string
			for i := range pc.Fields {
				for c := 0; c < pc.Count[i]; c++ {
					tok, err := formatField(pc.Data[off:off+pc.Size[i]], pc.Type[i], pc.Size[i])
					if err != nil {
						return err
					}
					toks = append(toks, tok)
					off += pc.Size[i]
				}
			}
			fmt.Fprintf(bw, "%s\n", strings.Join(toks, " "))
		}
	case Binary:
		fmt.Fprintf(bw, "DATA binary\n")
		if _, err := bw.Write(pc.Data[:stride*pc.Points]); err != nil {
			return err
		}
	case BinaryCompressed:
		fmt.Fprintf(bw, "DATA binary_compressed\n")

		// Reorder point by point to field by field.
		head := make([]int, len(pc.Fields))
		offset := make([]int, len(pc.Fields))
		var pos, off int
		for i := range pc.Fields {
			head[i] = pos
			offset[i] = off
			pos += pc.Size[i] * pc.Count[i] * pc.Points
			off += pc.Size[i] * pc.Count[i]
		}
		soa := make([]byte, stride*pc.Points)
		for p := 0; p < pc.Points; p++ {
			for i := range head {
				size := pc.Size[i] * pc.Count[i]
				from := p*stride + offset[i]
				to := head[i] + p*size
				copy(soa[to:to+size], pc.Data[from:from+size])
			}
		}

		buf := make([]byte, len(soa)+len(soa)/16+64+3)
		n, err := lzf.Compress(soa, buf)
		if err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(n)); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, int32(len(soa))); err != nil {
			return err
		}
		if _, err := bw.Write(buf[:n]); err != nil {
			return err
		}
	default:
		return errors.New("unknown data format")
	}
	return bw.Flush()
}

func joinInts(vs []int) string {
	toks := make([]string, len(vs))
	for i, v := range vs {
		toks[i] = strconv.Itoa(v)
	}
	return strings.Join(toks, " ")
}

func joinFloats(vs []float32) string {
	toks := make([]string, len(vs))
	for i, v := range vs {
		toks[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(toks, " ")
}

func putField(b []byte, typ string, size int, tok string) error {
	switch typ {
	case "F":
		switch size {
		case 4:
			f, err := strconv.ParseFloat(tok, 32)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint32(b, math.Float32bits(float32(f)))
		case 8:
			f, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return err
			}
			binary.LittleEndian.PutUint64(b, math.Float64bits(f))
		default:
			return errors.New("unsupported float size")
		}
	case "I":
		v, err := strconv.ParseInt(tok, 10, size*8)
		if err != nil {
			return err
		}
		putUint(b, size, uint64(v))
	case "U":
		v, err := strconv.ParseUint(tok, 10, size*8)
		if err != nil {
			return err
		}
		putUint(b, size, v)
	default:
		return errors.New("unsupported field type")
	}
	return nil
}

func formatField(b []byte, typ string, size int) (string, error) {
	switch typ {
	case "F":
		switch size {
		case 4:
			f := math.Float32frombits(binary.LittleEndian.Uint32(b))
			return strconv.FormatFloat(float64(f), 'g', -1, 32), nil
		case 8:
			f := math.Float64frombits(binary.LittleEndian.Uint64(b))
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		default:
			return "", errors.New("unsupported float size")
		}
	case "I":
		v := int64(getUint(b, size)) << (64 - 8*size) >> (64 - 8*size)
		return strconv.FormatInt(v, 10), nil
	case "U":
		return strconv.FormatUint(getUint(b, size), 10), nil
	default:
		return "", errors.New("unsupported field type")
	}
}

func putUint(b []byte, size int, v uint64) {
	for i := 0; i < size; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

func getUint(b []byte, size int) uint64 {
	var v uint64
	for i := 0; i < size; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}
