package mem

import "encoding/binary"

// DefaultBytesPageSize provides a default for Bytes.PageSize.
const DefaultBytesPageSize = 4096

// CellSize is the fixed width, in bytes, of a single Forth machine word as
// stored by LoadCell/StoreCell. It is independent of the host's native int
// width so that dictionary encodings are portable across build targets.
const CellSize = 8

// Bytes implements a byte-oriented paged memory over PagedCore. It
// backs any region that needs mixed byte- and cell-granularity access, such
// as a Forth dictionary that is walked byte-by-byte (names, flags) but also
// fetched and stored a cell at a time (@, !, code fields).
type Bytes struct {
	PagedCore
	pages [][]byte
}

// Size returns an address one past the last position in the last page
// allocated so far.
func (m *Bytes) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load8 returns a single byte from the given address.
// Unallocated pages read back as 0.
func (m *Bytes) Load8(addr uint) (byte, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}
	if m.PageSize == 0 || len(m.pages) == 0 {
		return 0, nil
	}
	pageID := m.findPage(addr)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}
	return 0, nil
}

// Store8 stores a single byte at addr, allocating pages as necessary.
func (m *Bytes) Store8(addr uint, val byte) error {
	return m.storeBytes(addr, []byte{val})
}

// LoadBytes copies len(buf) bytes from memory starting at addr into buf.
// Unallocated ranges read back as 0.
func (m *Bytes) LoadBytes(addr uint, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	end := addr + uint(len(buf))
	if err := m.checkLimit(end, "load"); err != nil {
		return err
	}

	for i := range buf {
		buf[i] = 0
	}

	if m.PageSize == 0 || len(m.pages) == 0 {
		return nil
	}

	start := addr
	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}
		page := m.pages[pageID]
		skip := int(addr) - int(base)
		if skip > 0 {
			if skip >= len(page) {
				continue
			}
			base += uint(skip)
			page = page[skip:]
		}
		off := int(base - start)
		n := copy(buf[off:], page)
		addr = base + uint(n)
	}
	return nil
}

// StoreBytes writes the given bytes at addr, allocating pages as necessary.
func (m *Bytes) StoreBytes(addr uint, b []byte) error {
	return m.storeBytes(addr, b)
}

func (m *Bytes) storeBytes(addr uint, values []byte) error {
	if len(values) == 0 {
		return nil
	}
	end := addr + uint(len(values))
	if err := m.checkLimit(end, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultBytesPageSize
	}

	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			base += skip
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}
	return nil
}

func (m *Bytes) allocPage(pageID int, addr uint) (base, size uint, page []byte) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]byte, size)
		if pageID == len(m.pages) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}

// LoadCell reads a CellSize-wide little-endian signed word starting at addr.
func (m *Bytes) LoadCell(addr uint) (int, error) {
	var buf [CellSize]byte
	if err := m.LoadBytes(addr, buf[:]); err != nil {
		return 0, err
	}
	return int(int64(binary.LittleEndian.Uint64(buf[:]))), nil
}

// StoreCell writes val as a CellSize-wide little-endian word starting at addr.
func (m *Bytes) StoreCell(addr uint, val int) error {
	var buf [CellSize]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(val)))
	return m.storeBytes(addr, buf[:])
}
