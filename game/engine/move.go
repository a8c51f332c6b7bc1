package engine

// linePosition maps a (line, slot) pair to a grid position for a move in
// direction dir. Lines run perpendicular to the motion axis; slot 0 is the
// cell against the wall the move pushes toward. All four directions share the
// same compaction algorithm through this one mapping.
func linePosition(dir Direction, line, slot int) Position {
	switch dir {
	case Left:
		return Position{Col: slot, Row: line}
	case Right:
		return Position{Col: BoardSize - 1 - slot, Row: line}
	case Up:
		return Position{Col: line, Row: slot}
	case Down:
		return Position{Col: line, Row: BoardSize - 1 - slot}
	default:
		return Position{}
	}
}

// Move applies gravity in dir to the whole board. Each of the four lines is
// compacted independently: tiles are scanned in slide order while a skyline
// cursor tracks the next free slot and whether the tile already placed there
// may still merge. A tile matching the skyline tile's value merges into it,
// keeping the skyline tile's identity at double the value; a tile that
// resulted from a merge cannot merge again within the same move.
//
// If no tile's position or value changed, the board is left untouched and the
// outcome is MoveBlocked. Otherwise the compacted tiles and score are
// committed and one spawn is drawn. The spawned tile is returned but not yet
// on the board: the caller commits it with Append once any animation has run.
// The Move/Append pair is one logical turn; use Step to collapse the two.
func (e *GameEngine) Move(dir Direction) (*Tile, MoveOutcome) {
	next := make([]Tile, 0, len(e.board.Tiles))
	score := e.board.Score
	changed := false

	for line := 0; line < BoardSize; line++ {
		// skyline is the slot index of the last tile placed in this line and
		// placed is that tile; canMerge clears once it has absorbed a merge.
		skyline := -1
		var placed Tile
		hasPlaced := false
		canMerge := false

		for slot := 0; slot < BoardSize; slot++ {
			tile, ok := e.board.TileAt(linePosition(dir, line, slot))
			if !ok {
				continue
			}

			if hasPlaced && canMerge && placed.Value == tile.Value {
				// The merged tile keeps the identity of the tile already at
				// the skyline slot, the one further along the motion.
				placed.Value *= 2
				next[len(next)-1] = placed
				score += placed.Value
				canMerge = false
				changed = true
				continue
			}

			skyline++
			dest := linePosition(dir, line, skyline)
			if dest != tile.Pos {
				changed = true
			}
			placed = Tile{ID: tile.ID, Value: tile.Value, Pos: dest}
			next = append(next, placed)
			hasPlaced = true
			canMerge = true
		}
	}

	if !changed {
		return nil, MoveBlocked
	}

	e.board.Tiles = next
	e.board.Score = score

	spawned := e.spawn()
	if spawned == nil {
		return nil, MovedNoSpace
	}
	return spawned, MovedAndSpawned
}

// spawn draws a new tile for a uniformly random free cell: value 2 with
// probability 7/8, 4 with probability 1/8. It returns nil when the board is
// full. The tile is not added to the board here.
func (e *GameEngine) spawn() *Tile {
	free := e.board.FreePositions()
	if len(free) == 0 {
		return nil
	}

	pos := free[e.rng.Intn(len(free))]
	value := 2
	if e.rng.Intn(8) == 0 {
		value = 4
	}

	e.nextID++
	return &Tile{ID: e.nextID, Value: value, Pos: pos}
}
