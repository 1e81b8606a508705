package core

// TileKind identifies the type of a grid cell.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFree
	TileSingleUse
	TileInfo
	TileLockedDoor
	TileExit
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileWall:
		return "Wall"
	case TileFree:
		return "Free"
	case TileSingleUse:
		return "SingleUse"
	case TileInfo:
		return "InfoField"
	case TileLockedDoor:
		return "LockedDoor"
	case TileExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// EntityID is an opaque reference to an entity owned by the GameState.
type EntityID int

// NoEntity marks an unoccupied tile.
const NoEntity EntityID = 0

// AvatarID is the id of the single player-controlled entity.
const AvatarID EntityID = 1

// Tile is one cell of the grid. Tiles are values: the grid owns them and the
// occupant is stored as an id, never a pointer.
type Tile struct {
	Kind     TileKind
	Item     Item     // Valid only for TileFree
	Door     KeyColor // Valid only for TileLockedDoor
	Occupant EntityID
}

// Wall returns an impassable wall tile.
func Wall() Tile {
	return Tile{Kind: TileWall}
}

// Free returns an empty free tile.
func Free() Tile {
	return Tile{Kind: TileFree}
}

// FreeWith returns a free tile carrying an item.
func FreeWith(item Item) Tile {
	return Tile{Kind: TileFree, Item: item}
}

// SingleUse returns a tile that turns into a wall once the avatar leaves it.
func SingleUse() Tile {
	return Tile{Kind: TileSingleUse}
}

// InfoField returns an info tile.
func InfoField() Tile {
	return Tile{Kind: TileInfo}
}

// LockedDoor returns a door opened by a key of color c.
func LockedDoor(c KeyColor) Tile {
	return Tile{Kind: TileLockedDoor, Door: c}
}

// Exit returns the level exit.
func Exit() Tile {
	return Tile{Kind: TileExit}
}

// Occupied reports whether an entity stands on the tile.
func (t Tile) Occupied() bool {
	return t.Occupant != NoEntity
}

// Valid reports whether the tile is a well-formed variant.
func (t Tile) Valid() bool {
	switch t.Kind {
	case TileFree:
		return t.Item.Valid() && t.Door == 0
	case TileLockedDoor:
		return t.Door.Valid() && t.Item.IsNone()
	case TileWall, TileSingleUse, TileInfo, TileExit:
		return t.Item.IsNone() && t.Door == 0
	default:
		return false
	}
}

// Letter returns the level-file letter for the tile, ignoring the occupant.
func (t Tile) Letter() byte {
	switch t.Kind {
	case TileWall:
		return 'W'
	case TileFree:
		return t.Item.Letter()
	case TileSingleUse:
		return 'S'
	case TileInfo:
		return 'I'
	case TileExit:
		return 'E'
	case TileLockedDoor:
		switch t.Door {
		case ColorRed:
			return 'R'
		case ColorBlue:
			return 'B'
		case ColorGreen:
			return 'G'
		case ColorYellow:
			return 'Y'
		}
	}
	return '?'
}
