package bench

import (
	"testing"

	"chess-zobrist/dragon"
	gm "chess-zobrist/goosemg"
	"chess-zobrist/perft"
	"chess-zobrist/tt"
	"chess-zobrist/zobrist"
)

// kiwipeteMoves returns every legal move from kiwipete with the board they apply to.
func kiwipeteMoves(b *testing.B) (*gm.Board, []gm.Move) {
	board, err := gm.ParseFEN(kiwipete)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	return board, dragon.LegalMoves(board)
}

func BenchmarkUpdate_Kiwipete(b *testing.B) {
	keys := zobrist.DefaultKeys()
	board, moves := kiwipeteMoves(b)
	hash := zobrist.Compute(keys, board)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = zobrist.Update(keys, hash, board, moves[i%len(moves)])
	}
}

func BenchmarkComputeAfterPlay_Kiwipete(b *testing.B) {
	keys := zobrist.DefaultKeys()
	board, moves := kiwipeteMoves(b)
	children := make([]*gm.Board, len(moves))
	for i, m := range moves {
		children[i] = board.Clone()
		children[i].Play(m)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = zobrist.Compute(keys, children[i%len(children)])
	}
}

func benchPerft(b *testing.B, fen string, depth int, ttMB int) {
	board, err := gm.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var cache *tt.Table[uint64]
		if ttMB > 0 {
			cache = tt.New[uint64](ttMB)
		}
		_ = perft.New(zobrist.DefaultKeys(), cache).Count(board, depth)
	}
}

func BenchmarkPerft_Initial_D3(b *testing.B) {
	benchPerft(b, gm.FENStartPos, 3, 0)
}

func BenchmarkPerft_Initial_D4_Cached(b *testing.B) {
	benchPerft(b, gm.FENStartPos, 4, 16)
}

func BenchmarkPerft_Kiwipete_D2(b *testing.B) {
	benchPerft(b, kiwipete, 2, 0)
}
