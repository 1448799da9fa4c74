package ddf

import (
	"github.com/yamitzky/biffkit-go/codec"
)

// ContainerRecord holds an ordered list of child records.
type ContainerRecord struct {
	Header
	Children []Record
}

// NewContainerRecord returns an empty container with the given id.
func NewContainerRecord(id uint16) *ContainerRecord {
	return &ContainerRecord{Header: Header{Options: versionContainer, RecordID: id}}
}

func (r *ContainerRecord) writeBody(w *codec.Writer, base int, l SerializationListener) error {
	for _, child := range r.Children {
		start := w.Len()
		if err := Serialize(w, child, base+start, l); err != nil {
			return err
		}
	}
	return nil
}

// ChildContainers returns the children that are containers themselves.
func (r *ContainerRecord) ChildContainers() []*ContainerRecord {
	var out []*ContainerRecord
	for _, c := range r.Children {
		if cc, ok := c.(*ContainerRecord); ok {
			out = append(out, cc)
		}
	}
	return out
}

// ChildByID returns the first direct child with the given id, or nil.
func (r *ContainerRecord) ChildByID(id uint16) Record {
	for _, c := range r.Children {
		if c.header().RecordID == id {
			return c
		}
	}
	return nil
}

// AddChild appends a child record.
func (r *ContainerRecord) AddChild(child Record) {
	r.Children = append(r.Children, child)
}

// RemoveChild removes the first occurrence of child and reports whether it
// was found.
func (r *ContainerRecord) RemoveChild(child Record) bool {
	for i, c := range r.Children {
		if c == child {
			r.Children = append(r.Children[:i], r.Children[i+1:]...)
			return true
		}
	}
	return false
}

// AtomRecord keeps the body of a record type without a dedicated codec.
type AtomRecord struct {
	Header
	Data []byte
}

func (r *AtomRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	w.WriteBytes(r.Data)
	return nil
}

// Shape flags of SpRecord.
const (
	FLAG_GROUP        = 0x0001
	FLAG_CHILD        = 0x0002
	FLAG_PATRIARCH    = 0x0004
	FLAG_DELETED      = 0x0008
	FLAG_OLESHAPE     = 0x0010
	FLAG_HAVEMASTER   = 0x0020
	FLAG_FLIPHORIZ    = 0x0040
	FLAG_FLIPVERT     = 0x0080
	FLAG_CONNECTOR    = 0x0100
	FLAG_HAVEANCHOR   = 0x0200
	FLAG_BACKGROUND   = 0x0400
	FLAG_HASSHAPETYPE = 0x0800
)

// SpRecord identifies a shape. The instance holds the shape type.
type SpRecord struct {
	Header
	ShapeID uint32
	Flags   uint32
	Extra   []byte
}

func readSpRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &SpRecord{Header: h}
	var err error
	if r.ShapeID, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if r.Flags, err = c.ReadU32(); err != nil {
		return nil, err
	}
	r.Extra = remainder(c)
	return r, nil
}

func (r *SpRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	w.WriteU32(r.ShapeID)
	w.WriteU32(r.Flags)
	w.WriteBytes(r.Extra)
	return nil
}

// ShapeType returns the shape type stored in the instance.
func (r *SpRecord) ShapeType() uint16 { return r.Instance() }

// SpgrRecord is the coordinate system of a group shape.
type SpgrRecord struct {
	Header
	Left, Top, Right, Bottom int32
	Extra                    []byte
}

func readSpgrRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &SpgrRecord{Header: h}
	for _, f := range []*int32{&r.Left, &r.Top, &r.Right, &r.Bottom} {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	r.Extra = remainder(c)
	return r, nil
}

func (r *SpgrRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	for _, v := range []int32{r.Left, r.Top, r.Right, r.Bottom} {
		w.WriteI32(v)
	}
	w.WriteBytes(r.Extra)
	return nil
}

// DgRecord counts the shapes of one drawing. The instance holds the
// drawing id.
type DgRecord struct {
	Header
	NumShapes   uint32
	LastShapeID uint32
	Extra       []byte
}

func readDgRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &DgRecord{Header: h}
	var err error
	if r.NumShapes, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if r.LastShapeID, err = c.ReadU32(); err != nil {
		return nil, err
	}
	r.Extra = remainder(c)
	return r, nil
}

func (r *DgRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	w.WriteU32(r.NumShapes)
	w.WriteU32(r.LastShapeID)
	w.WriteBytes(r.Extra)
	return nil
}

// DrawingID returns the drawing id stored in the instance.
func (r *DgRecord) DrawingID() uint16 { return r.Instance() }

// FileIDCluster is one shape id cluster of a DggRecord.
type FileIDCluster struct {
	DrawingGroupID  uint32
	NumShapeIDsUsed uint32
}

// DggRecord holds the drawing group wide shape id bookkeeping.
type DggRecord struct {
	Header
	ShapeIDMax     uint32
	NumShapesSaved uint32
	DrawingsSaved  uint32
	Clusters       []FileIDCluster

	// cidcl is the stored cluster count plus one; it is written back while
	// the cluster list keeps its read length.
	cidcl        uint32
	readClusters int
}

func readDggRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &DggRecord{Header: h}
	for _, f := range []*uint32{&r.ShapeIDMax, &r.cidcl, &r.NumShapesSaved, &r.DrawingsSaved} {
		v, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	if c.Remaining()%8 != 0 {
		return nil, codec.Errorf(codec.ErrCorruptRecord, "Dgg cluster table of %d bytes", c.Remaining())
	}
	for c.Remaining() > 0 {
		var cl FileIDCluster
		cl.DrawingGroupID, _ = c.ReadU32()
		cl.NumShapeIDsUsed, _ = c.ReadU32()
		r.Clusters = append(r.Clusters, cl)
	}
	r.readClusters = len(r.Clusters)
	return r, nil
}

func (r *DggRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	w.WriteU32(r.ShapeIDMax)
	w.WriteU32(r.NumIDClusters())
	w.WriteU32(r.NumShapesSaved)
	w.WriteU32(r.DrawingsSaved)
	for _, cl := range r.Clusters {
		w.WriteU32(cl.DrawingGroupID)
		w.WriteU32(cl.NumShapeIDsUsed)
	}
	return nil
}

// NumIDClusters returns the cluster count field: the number of clusters
// plus one.
func (r *DggRecord) NumIDClusters() uint32 {
	if r.cidcl != 0 && len(r.Clusters) == r.readClusters {
		return r.cidcl
	}
	return uint32(len(r.Clusters) + 1)
}

// AddCluster records shape ids used by a drawing.
func (r *DggRecord) AddCluster(drawingGroupID, numShapeIDsUsed uint32) {
	r.Clusters = append(r.Clusters, FileIDCluster{DrawingGroupID: drawingGroupID, NumShapeIDsUsed: numShapeIDsUsed})
}

// ClientAnchorRecord anchors a shape to sheet cells. Short anchors, as
// written by some producers, keep their bytes in Extra and leave the cell
// fields zero.
type ClientAnchorRecord struct {
	Header
	Flag      uint16
	Col1, Dx1 uint16
	Row1, Dy1 uint16
	Col2, Dx2 uint16
	Row2, Dy2 uint16
	Short     bool
	Extra     []byte
}

const clientAnchorSize = 18

func readClientAnchorRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &ClientAnchorRecord{Header: h}
	if c.Remaining() < clientAnchorSize {
		r.Short = true
		r.Extra = remainder(c)
		return r, nil
	}
	for _, f := range []*uint16{&r.Flag, &r.Col1, &r.Dx1, &r.Row1, &r.Dy1, &r.Col2, &r.Dx2, &r.Row2, &r.Dy2} {
		*f, _ = c.ReadU16()
	}
	r.Extra = remainder(c)
	return r, nil
}

func (r *ClientAnchorRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	if !r.Short {
		for _, v := range []uint16{r.Flag, r.Col1, r.Dx1, r.Row1, r.Dy1, r.Col2, r.Dx2, r.Row2, r.Dy2} {
			w.WriteU16(v)
		}
	}
	w.WriteBytes(r.Extra)
	return nil
}

// ChildAnchorRecord places a shape inside its group's coordinate system.
type ChildAnchorRecord struct {
	Header
	Dx1, Dy1, Dx2, Dy2 int32
	Extra              []byte
}

func readChildAnchorRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &ChildAnchorRecord{Header: h}
	for _, f := range []*int32{&r.Dx1, &r.Dy1, &r.Dx2, &r.Dy2} {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		*f = v
	}
	r.Extra = remainder(c)
	return r, nil
}

func (r *ChildAnchorRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	for _, v := range []int32{r.Dx1, r.Dy1, r.Dx2, r.Dy2} {
		w.WriteI32(v)
	}
	w.WriteBytes(r.Extra)
	return nil
}

// ClientDataRecord is host specific data; in a workbook it is empty and
// the shape's OBJ record follows the MSODRAWING record that ends with it.
type ClientDataRecord struct {
	Header
	Data []byte
}

func (r *ClientDataRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	w.WriteBytes(r.Data)
	return nil
}

// SplitMenuColorsRecord holds the four most recently used colors.
type SplitMenuColorsRecord struct {
	Header
	Colors [4]uint32
	Extra  []byte
}

func readSplitMenuColorsRecord(h Header, c *codec.Cursor) (Record, error) {
	r := &SplitMenuColorsRecord{Header: h}
	for i := range r.Colors {
		v, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		r.Colors[i] = v
	}
	r.Extra = remainder(c)
	return r, nil
}

func (r *SplitMenuColorsRecord) writeBody(w *codec.Writer, _ int, _ SerializationListener) error {
	for _, v := range r.Colors {
		w.WriteU32(v)
	}
	w.WriteBytes(r.Extra)
	return nil
}

func remainder(c *codec.Cursor) []byte {
	if c.Remaining() == 0 {
		return nil
	}
	return c.ReadRemainder()
}
