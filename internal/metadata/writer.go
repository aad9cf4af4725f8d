package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"github.com/donwrightdesigns/dji-srt-geotag/internal/geo"
)

const gpsIfdPath = "IFD/GPSInfo"

// WriteError is a persistence fault: unreadable container, corrupt EXIF or
// a filesystem failure. It is distinct from expected misses (no interval,
// unparsable record), which never reach the writer.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write gps tag to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteGPS replaces the GPS IFD of the image's EXIF block with tag and
// persists the result. All other metadata is untouched; a file without an
// EXIF block gets a fresh one holding only the GPS IFD. The rewrite goes
// through a temp file in the same directory, so any failure leaves the
// original byte-for-byte intact.
func WriteGPS(path string, tag GPSTag) error {
	jmp := jpegstructure.NewJpegMediaParser()
	intfc, err := jmp.ParseFile(path)
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("parse jpeg: %w", err)}
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := sl.ConstructExifBuilder()
	if err != nil {
		// Only a genuinely absent EXIF block may be replaced with a
		// fresh root IFD. A block that exists but cannot be parsed is
		// a fault: rebuilding would silently discard the metadata.
		if !missingExif(err) {
			return &WriteError{Path: path, Err: fmt.Errorf("corrupt exif: %w", err)}
		}

		im, mapErr := exifcommon.NewIfdMappingWithStandard()
		if mapErr != nil {
			return &WriteError{Path: path, Err: mapErr}
		}
		rootIb = exif.NewIfdBuilder(
			im,
			exif.NewTagIndex(),
			exifcommon.IfdStandardIfdIdentity,
			exifcommon.EncodeDefaultByteOrder,
		)
	}

	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, gpsIfdPath)
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("gps ifd: %w", err)}
	}
	if err := setGPSFields(gpsIb, tag); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("rebuild exif: %w", err)}
	}

	buf := new(bytes.Buffer)
	if err := sl.Write(buf); err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("serialize jpeg: %w", err)}
	}

	if err := replaceFile(path, buf.Bytes()); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

// missingExif matches the no-EXIF-segment sentinel. The segment parser
// wraps errors in its own chain, so the sentinel text is checked as well.
func missingExif(err error) bool {
	return errors.Is(err, exif.ErrNoExif) ||
		strings.Contains(err.Error(), exif.ErrNoExif.Error())
}

func setGPSFields(ib *exif.IfdBuilder, tag GPSTag) error {
	fields := []struct {
		name  string
		value interface{}
	}{
		{"GPSLatitudeRef", tag.Lat.Ref},
		{"GPSLatitude", dmsRationals(tag.Lat)},
		{"GPSLongitudeRef", tag.Lon.Ref},
		{"GPSLongitude", dmsRationals(tag.Lon)},
		// 0 = above sea level, fixed regardless of sign.
		{"GPSAltitudeRef", []byte{0}},
		{"GPSAltitude", []exifcommon.Rational{rational(tag.Altitude)}},
	}

	for _, f := range fields {
		if err := ib.SetStandardWithName(f.name, f.value); err != nil {
			return fmt.Errorf("set %s: %w", f.name, err)
		}
	}

	return nil
}

func dmsRationals(d geo.DMS) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: d.Degrees, Denominator: 1},
		{Numerator: d.Minutes, Denominator: 1},
		rational(geo.NewRational(d.Seconds, geo.SecondsScale)),
	}
}

func rational(r geo.Rational) exifcommon.Rational {
	return exifcommon.Rational{
		Numerator:   uint32(r.Num),
		Denominator: uint32(r.Den),
	}
}

// replaceFile writes data next to path and renames it over the original,
// carrying over the original file mode.
func replaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, info.Mode()); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}
