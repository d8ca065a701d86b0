package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"chess-zobrist/dragon"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/tt"
	"chess-zobrist/zobrist"
)

const crazyhouseStart = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR[] w KQkq - 0 1"

type stats struct {
	positions  int
	games      int
	collisions int
	desyncs    int
}

func main() {
	positions := flag.Int("positions", 100000, "Number of positions to play")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random move seed")
	keySeed := flag.Int64("keyseed", zobrist.DefaultSeed, "Key table seed")
	drops := flag.Bool("drops", false, "Play with pockets and random drops")
	ttMB := flag.Int("ttmb", 64, "Collision table size in MB")
	maxPlies := flag.Int("maxplies", 300, "Restart a game after this many plies")
	flag.Parse()

	if *positions <= 0 || *ttMB <= 0 {
		fmt.Fprintln(os.Stderr, "-positions and -ttmb must be > 0")
		os.Exit(2)
	}
	fmt.Printf("seed %d, key seed %d\n", *seed, *keySeed)

	keys := zobrist.NewKeys(*keySeed)
	if dup := keys.Duplicates(); len(dup) > 0 {
		fmt.Fprintf(os.Stderr, "key table has %d duplicate entries\n", len(dup))
		os.Exit(1)
	}

	start := gm.FENStartPos
	if *drops {
		start = crazyhouseStart
	}
	s := run(keys, rand.New(rand.NewSource(*seed)), tt.New[string](*ttMB), start, *positions, *maxPlies, *drops)
	fmt.Printf("%d positions in %d games: %d fingerprint desyncs, %d collisions\n", s.positions, s.games, s.desyncs, s.collisions)
	if s.desyncs > 0 || s.collisions > 0 {
		os.Exit(1)
	}
}

// run plays random games from start, comparing every incremental fingerprint
// with a full recompute and every fingerprint with the position last seen
// under it.
func run(keys *zobrist.Keys, rnd *rand.Rand, seen *tt.Table[string], start string, positions, maxPlies int, drops bool) stats {
	var s stats
	var h *zobrist.Hashed[*gm.Board]
	var history zobrist.History
	plies := 0

	newGame := func() {
		var err error
		h, err = zobrist.FromFEN(keys, start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
			os.Exit(2)
		}
		history.Reset()
		history.Push(h.Fingerprint())
		plies = 0
		s.games++
	}
	newGame()

	for s.positions < positions {
		b := h.Position()
		m, ok := gm.Move(0), false
		if drops && rnd.Intn(4) == 0 && !dragon.InCheck(b) {
			m, ok = randomDrop(rnd, b)
		}
		if !ok {
			moves := dragon.LegalMoves(b)
			if len(moves) == 0 || b.HalfmoveClock() >= 100 || plies >= maxPlies || history.IsThreefold() {
				newGame()
				continue
			}
			m = moves[rnd.Intn(len(moves))]
		}

		h.Play(m)
		plies++
		s.positions++
		history.Push(h.Fingerprint())

		if !h.Verify() {
			s.desyncs++
			fmt.Printf("desync after %s: %s\n", m, b.ToFEN())
		}
		epd := b.EPD()
		if prev, _, found := seen.Probe(h.Fingerprint()); found && prev != epd {
			s.collisions++
			fmt.Printf("collision %016x: %q and %q\n", h.Fingerprint(), prev, epd)
		}
		seen.Store(h.Fingerprint(), int8(min(plies, 127)), epd)

		if s.positions%100000 == 0 {
			fmt.Printf("%d positions\n", s.positions)
		}
	}
	return s
}

func randomDrop(rnd *rand.Rand, b *gm.Board) (gm.Move, bool) {
	us := b.SideToMove()
	var roles []gm.PieceType
	for pt := gm.PieceTypePawn; pt <= gm.PieceTypeQueen; pt++ {
		if b.Pocket(us, pt) > 0 {
			roles = append(roles, pt)
		}
	}
	if len(roles) == 0 {
		return 0, false
	}
	role := roles[rnd.Intn(len(roles))]
	occ := b.Occupancy()
	var empty []gm.Square
	for sq := gm.Square(0); sq < 64; sq++ {
		if occ&(1<<uint(sq)) != 0 || (role == gm.PieceTypePawn && (sq.Rank() == 0 || sq.Rank() == 7)) {
			continue
		}
		empty = append(empty, sq)
	}
	if len(empty) == 0 {
		return 0, false
	}
	return gm.NewPut(role, empty[rnd.Intn(len(empty))]), true
}
