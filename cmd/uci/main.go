package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"chess-zobrist/dragon"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/perft"
	"chess-zobrist/zobrist"
)

func main() {
	uciLoop(os.Stdin, os.Stdout)
}

type session struct {
	out     io.Writer
	keys    *zobrist.Keys
	pos     *zobrist.Hashed[*gm.Board]
	history zobrist.History
}

func newSession(out io.Writer) *session {
	s := &session{out: out, keys: zobrist.DefaultKeys()}
	s.reset()
	return s
}

func (s *session) reset() {
	s.pos = zobrist.NewInitial(s.keys, gm.NewBoard())
	s.history.Reset()
	s.history.Push(s.pos.Fingerprint())
}

func (s *session) println(a ...any) { fmt.Fprintln(s.out, a...) }

// uciLoop answers a UCI-style command stream. It keeps a hashed position
// rather than searching: "d" prints the position and its fingerprint and
// "go perft N" counts the move tree below it.
func uciLoop(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	s := newSession(out)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name zobrist")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.reset()
		case "quit":
			return
		case "d":
			s.display()
		case "go":
			s.goCommand(tokens[1:])
		case "position":
			s.position(tokens[1:])
		default:
			s.println("info string Unknown command:", line)
		}
	}
}

func (s *session) display() {
	b := s.pos.Position()
	s.println("Fen:", b.ToFEN())
	s.println(fmt.Sprintf("Key: %016X", s.pos.Fingerprint()))
	s.println("Verified:", s.pos.Verify())
	if s.history.IsThreefold() {
		s.println("info string threefold repetition")
	}
}

func (s *session) goCommand(args []string) {
	if len(args) != 2 || strings.ToLower(args[0]) != "perft" {
		s.println("info string Only go perft <depth> is supported")
		return
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth <= 0 {
		s.println("info string Malformed go command option; could not convert depth")
		return
	}
	counter := perft.New(s.keys, nil)
	div := counter.Divide(s.pos.Position(), depth)
	moves := make([]string, 0, len(div))
	counts := make(map[string]uint64, len(div))
	var total uint64
	for m, n := range div {
		moves = append(moves, m.String())
		counts[m.String()] = n
		total += n
	}
	slices.Sort(moves)
	for _, m := range moves {
		s.println(fmt.Sprintf("%s: %d", m, counts[m]))
	}
	s.println()
	s.println("Nodes searched:", total)
	for _, mm := range counter.Mismatches {
		s.println("info string fingerprint mismatch", mm)
	}
}

func (s *session) position(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var rest []string
	switch strings.ToLower(args[0]) {
	case "startpos":
		s.reset()
		rest = args[1:]
	case "fen":
		end := slices.Index(args, "moves")
		if end < 0 {
			end = len(args)
		}
		if end == 1 {
			s.println("info string Invalid fen position")
			return
		}
		h, err := zobrist.FromFEN(s.keys, strings.Join(args[1:end], " "))
		if err != nil {
			s.println("info string Invalid fen position:", err)
			return
		}
		s.pos = h
		s.history.Reset()
		s.history.Push(h.Fingerprint())
		rest = args[end:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, text := range rest[1:] {
		b := s.pos.Position()
		m, err := gm.ParseMove(b, text)
		if err != nil || (m.Kind() != gm.MovePut && !slices.Contains(dragon.LegalMoves(b), m)) {
			s.println("info string Move", text, "not found for position", b.ToFEN())
			return
		}
		s.pos.Play(m)
		if b.HalfmoveClock() == 0 {
			s.history.Reset()
		}
		s.history.Push(s.pos.Fingerprint())
	}
}
