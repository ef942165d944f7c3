package content

// Tag names a page template.
type Tag string

const (
	TagCover         Tag = "cover"
	TagTimeline      Tag = "timeline"
	TagFlowChart     Tag = "flow-chart"
	TagDataTable     Tag = "data-table"
	TagPhotoGallery  Tag = "photo-gallery"
	TagMapTextList   Tag = "map-text-list"
	TagMapTextCards  Tag = "map-text-cards"
	TagMapOverlay    Tag = "map-overlay"
	TagThreeCircles  Tag = "three-circles"
	TagMultiCardGrid Tag = "multi-card-grid"
)

// Tags lists every template in catalog order.
func Tags() []Tag {
	return []Tag{
		TagCover,
		TagTimeline,
		TagFlowChart,
		TagDataTable,
		TagPhotoGallery,
		TagMapTextList,
		TagMapTextCards,
		TagMapOverlay,
		TagThreeCircles,
		TagMultiCardGrid,
	}
}

// Content is implemented by every template payload.
type Content interface {
	Tag() Tag
}

// Cover is a title page.
type Cover struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle,omitempty"`
	Presenter       string `json:"presenter,omitempty"`
	Year            string `json:"year,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
}

func (Cover) Tag() Tag { return TagCover }

// TimelineEvent is one milestone on a timeline.
type TimelineEvent struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// Timeline lays events along a horizontal axis.
type Timeline struct {
	Heading string          `json:"heading,omitempty"`
	Color   string          `json:"color,omitempty"`
	Events  []TimelineEvent `json:"events"`
}

func (Timeline) Tag() Tag { return TagTimeline }

// Node is a flow-chart box positioned by percentage of the chart area.
type Node struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Color   string  `json:"color,omitempty"`
	Heading string  `json:"heading,omitempty"`
	Body    string  `json:"body,omitempty"`
}

// Label positions for arrows.
const (
	LabelAbove = "above"
	LabelBelow = "below"
	LabelLeft  = "left"
	LabelRight = "right"
)

// Arrow connects two nodes by id.
type Arrow struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Label         string `json:"label,omitempty"`
	LabelPosition string `json:"labelPosition,omitempty"`
}

// FlowChart is a node/arrow diagram.
type FlowChart struct {
	Heading    string  `json:"heading,omitempty"`
	ArrowColor string  `json:"arrowColor,omitempty"`
	Nodes      []Node  `json:"nodes"`
	Arrows     []Arrow `json:"arrows,omitempty"`
}

func (FlowChart) Tag() Tag { return TagFlowChart }

// Column declares a table column and its width percentage.
type Column struct {
	Title string  `json:"title"`
	Width float64 `json:"width,omitempty"`
}

// DataTable is a header row plus body rows.
type DataTable struct {
	Heading     string     `json:"heading,omitempty"`
	HeaderColor string     `json:"headerColor,omitempty"`
	Striped     bool       `json:"striped,omitempty"`
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
}

func (DataTable) Tag() Tag { return TagDataTable }

// Photo is one gallery image with an optional caption.
type Photo struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// PhotoGallery arranges up to sixteen photos in a grid.
type PhotoGallery struct {
	Heading string  `json:"heading,omitempty"`
	Photos  []Photo `json:"photos"`
}

func (PhotoGallery) Tag() Tag { return TagPhotoGallery }

// ListItem is a titled paragraph.
type ListItem struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
}

// MapTextList shows a map beside a list of items.
type MapTextList struct {
	Heading     string     `json:"heading,omitempty"`
	MapImage    string     `json:"mapImage,omitempty"`
	AccentColor string     `json:"accentColor,omitempty"`
	Items       []ListItem `json:"items"`
}

func (MapTextList) Tag() Tag { return TagMapTextList }

// MapCard is a card placed over a map by percentage of the canvas.
type MapCard struct {
	Title string  `json:"title"`
	Body  string  `json:"body,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color,omitempty"`
}

// MapTextCards places cards over a full-bleed map.
type MapTextCards struct {
	Heading  string    `json:"heading,omitempty"`
	MapImage string    `json:"mapImage,omitempty"`
	Cards    []MapCard `json:"cards"`
}

func (MapTextCards) Tag() Tag { return TagMapTextCards }

// Marker is a labelled point over a map.
type Marker struct {
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// Panel is the info box shown over a map.
type Panel struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

// MapOverlay places markers and an info panel over a map.
type MapOverlay struct {
	Heading  string   `json:"heading,omitempty"`
	MapImage string   `json:"mapImage,omitempty"`
	Markers  []Marker `json:"markers"`
	Panel    Panel    `json:"panel,omitempty"`
}

func (MapOverlay) Tag() Tag { return TagMapOverlay }

// CircleItem is the text inside one of the three circles.
type CircleItem struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Color string `json:"color,omitempty"`
}

// ThreeCircles shows three overlapping circles.
type ThreeCircles struct {
	Heading string       `json:"heading,omitempty"`
	Circles []CircleItem `json:"circles"`
}

func (ThreeCircles) Tag() Tag { return TagThreeCircles }

// Card is one cell of a multi-card grid.
type Card struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// MultiCardGrid arranges up to twelve cards.
type MultiCardGrid struct {
	Heading string `json:"heading,omitempty"`
	Cards   []Card `json:"cards"`
}

func (MultiCardGrid) Tag() Tag { return TagMultiCardGrid }

// Unknown keeps a page whose template is not in the catalog so the deck
// still renders; resolvers draw a placeholder for it.
type Unknown struct {
	Template string `json:"template"`
}

func (u Unknown) Tag() Tag { return Tag(u.Template) }

func newContent(tag Tag) (Content, bool) {
	switch tag {
	case TagCover:
		return &Cover{}, true
	case TagTimeline:
		return &Timeline{}, true
	case TagFlowChart:
		return &FlowChart{}, true
	case TagDataTable:
		return &DataTable{}, true
	case TagPhotoGallery:
		return &PhotoGallery{}, true
	case TagMapTextList:
		return &MapTextList{}, true
	case TagMapTextCards:
		return &MapTextCards{}, true
	case TagMapOverlay:
		return &MapOverlay{}, true
	case TagThreeCircles:
		return &ThreeCircles{}, true
	case TagMultiCardGrid:
		return &MultiCardGrid{}, true
	}
	return nil, false
}

// deref turns the decoder's pointer payloads into values so resolvers can
// switch on value types.
func deref(c Content) Content {
	switch v := c.(type) {
	case *Cover:
		return *v
	case *Timeline:
		return *v
	case *FlowChart:
		return *v
	case *DataTable:
		return *v
	case *PhotoGallery:
		return *v
	case *MapTextList:
		return *v
	case *MapTextCards:
		return *v
	case *MapOverlay:
		return *v
	case *ThreeCircles:
		return *v
	case *MultiCardGrid:
		return *v
	}
	return c
}
