package sample

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"saytime/log"
)

var (
	ErrFormatMismatch  = errors.New("sample format mismatch")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownCategory = errors.New("unknown category")
)

// Order controls how files inside a category directory map to indices.
type Order int

const (
	// OrderListing keeps the raw directory enumeration order.
	OrderListing Order = iota
	// OrderName sorts file names lexically.
	OrderName
	// OrderNatural sorts by leading number first, so "2-x" precedes "10-x".
	OrderNatural
)

func (o Order) String() string {
	switch o {
	case OrderListing:
		return "listing"
	case OrderName:
		return "name"
	case OrderNatural:
		return "natural"
	default:
		return "unknown"
	}
}

func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(s) {
	case "", "listing":
		return OrderListing, nil
	case "name":
		return OrderName, nil
	case "natural":
		return OrderNatural, nil
	}
	return OrderListing, fmt.Errorf("unknown order %q (use listing, name, or natural)", s)
}

type LoadOptions struct {
	Order Order
}

// Skipped records a file that failed to decode.
type Skipped struct {
	Path string
	Err  error
}

// IndexError reports a lookup past the end of a category.
type IndexError struct {
	Category string
	Index    int
	Len      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (category has %d samples)", e.Category, e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// Store maps category names to their recordings. It is read-only after Load.
type Store struct {
	Root       string
	Format     Format
	categories map[string]Category
	Skipped    []Skipped
}

// Load reads every category directory under root. Files that fail to decode
// are logged and skipped; an unreadable directory or a sample whose format
// differs from the rest is fatal.
func Load(root string, categories []string, opts LoadOptions) (*Store, error) {
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("reading samples root: %w", err)
	}

	st := &Store{
		Root:       root,
		categories: make(map[string]Category, len(categories)),
	}
	var formatFrom string

	for _, name := range categories {
		dir := filepath.Join(root, name)
		names, err := ListWAV(dir, opts.Order)
		if err != nil {
			return nil, err
		}

		cat := make(Category, 0, len(names))
		skipped := 0
		for _, fn := range names {
			path := filepath.Join(dir, fn)
			s, err := ReadFile(path)
			if err != nil {
				log.SampleSkipped(path, err)
				st.Skipped = append(st.Skipped, Skipped{Path: path, Err: err})
				skipped++
				continue
			}
			if formatFrom == "" {
				st.Format = s.Format
				formatFrom = path
			} else if s.Format != st.Format {
				return nil, fmt.Errorf("%w: %s is %d Hz/%d-bit/%dch, %s is %d Hz/%d-bit/%dch",
					ErrFormatMismatch,
					path, s.Format.FrameRate, s.Format.SampleWidth*8, s.Format.Channels,
					formatFrom, st.Format.FrameRate, st.Format.SampleWidth*8, st.Format.Channels)
			}
			cat = append(cat, s)
		}
		st.categories[name] = cat
		log.StoreLoaded(name, len(cat), skipped)
	}
	return st, nil
}

// ListWAV returns the .wav file names in dir in the requested order.
func ListWAV(dir string, order Order) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("reading category: %w", err)
	}
	defer f.Close()

	// (*os.File).ReadDir does not sort, which preserves listing order.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("reading category %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		names = append(names, e.Name())
	}

	switch order {
	case OrderName:
		sort.Strings(names)
	case OrderNatural:
		sort.SliceStable(names, func(i, j int) bool { return naturalLess(names[i], names[j]) })
	}
	return names, nil
}

func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func naturalLess(a, b string) bool {
	na, okA := leadingNumber(a)
	nb, okB := leadingNumber(b)
	switch {
	case okA && okB && na != nb:
		return na < nb
	case okA != okB:
		return okA
	}
	return a < b
}

// Category returns the recordings loaded for name.
func (st *Store) Category(name string) (Category, bool) {
	c, ok := st.categories[name]
	return c, ok
}

// Len reports how many recordings category name holds.
func (st *Store) Len(name string) int {
	return len(st.categories[name])
}

// Pick returns category[index]. Negative indices count from the end, so -1 is
// the last recording.
func (st *Store) Pick(name string, index int) (Sample, error) {
	cat, ok := st.categories[name]
	if !ok {
		return Sample{}, fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}
	i := index
	if i < 0 {
		i += len(cat)
	}
	if i < 0 || i >= len(cat) {
		return Sample{}, &IndexError{Category: name, Index: index, Len: len(cat)}
	}
	return cat[i], nil
}
