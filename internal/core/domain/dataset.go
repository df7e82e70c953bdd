package domain

import (
	"bytes"
	"sort"
	"strconv"
)

// Dataset maps chapter numbers to normalised chapters.
// Keys are the filename-derived numbers, never the number stored in the file.
// It serialises as a JSON object whose keys appear in ascending numeric order.
type Dataset struct {
	chapters map[int]Chapter
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{chapters: make(map[int]Chapter)}
}

// Put stores a chapter under number, replacing any previous record.
func (d *Dataset) Put(number int, chapter Chapter) {
	d.chapters[number] = chapter
}

// Get returns the chapter stored under number.
func (d *Dataset) Get(number int) (Chapter, bool) {
	ch, ok := d.chapters[number]
	return ch, ok
}

// Len returns the number of chapters.
func (d *Dataset) Len() int {
	return len(d.chapters)
}

// Numbers returns the chapter numbers in ascending order.
func (d *Dataset) Numbers() []int {
	numbers := make([]int, 0, len(d.chapters))
	for n := range d.chapters {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// MarshalJSON encodes the dataset as an object keyed by chapter number.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range d.Numbers() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := marshalVerbatim(strconv.Itoa(n))
		buf.Write(key)
		buf.WriteByte(':')
		ch := d.chapters[n]
		value, err := marshalVerbatim(&ch)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
