package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/John-Robertt/oldphoto/internal/domain"
)

func TestSplit_Properties(t *testing.T) {
	for total := 0; total <= 64; total++ {
		for workers := 1; workers <= 17; workers++ {
			parts := Split(total, workers)
			require.Len(t, parts, workers, "total=%d workers=%d", total, workers)

			next, sum := 0, 0
			minLen, maxLen := total+1, -1
			for i, p := range parts {
				// 连续 + 不相交：每个区间从上一个区间的 End 开始。
				require.Equal(t, next, p.Start, "total=%d workers=%d part=%d", total, workers, i)
				require.GreaterOrEqual(t, p.End, p.Start)
				next = p.End
				sum += p.Len()
				minLen = min(minLen, p.Len())
				maxLen = max(maxLen, p.Len())
			}
			require.Equal(t, total, next, "并集必须恰好覆盖 [0,total)")
			require.Equal(t, total, sum)
			require.LessOrEqual(t, maxLen-minLen, 1, "total=%d workers=%d", total, workers)
		}
	}
}

func TestSplit_RemainderGoesFirst(t *testing.T) {
	got := Split(10, 4)
	want := []domain.Partition{{Start: 0, End: 3}, {Start: 3, End: 6}, {Start: 6, End: 8}, {Start: 8, End: 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("分区不符合预期 (-want +got):\n%s", diff)
	}
}

func TestSplit_ThreeFilesTwoWorkers(t *testing.T) {
	got := Split(3, 2)
	want := []domain.Partition{{Start: 0, End: 2}, {Start: 2, End: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("分区不符合预期 (-want +got):\n%s", diff)
	}
}

func TestSplit_ZeroTotal(t *testing.T) {
	got := Split(0, 3)
	require.Len(t, got, 3)
	for _, p := range got {
		require.Zero(t, p.Len())
	}
}

func TestSplit_MoreWorkersThanFiles(t *testing.T) {
	got := Split(2, 5)
	want := []domain.Partition{{Start: 0, End: 1}, {Start: 1, End: 2}, {Start: 2, End: 2}, {Start: 2, End: 2}, {Start: 2, End: 2}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("分区不符合预期 (-want +got):\n%s", diff)
	}
}

func TestSplit_NoWorkers(t *testing.T) {
	require.Nil(t, Split(5, 0))
	require.Nil(t, Split(5, -2))
}

func TestSplit_NegativeTotal(t *testing.T) {
	got := Split(-4, 2)
	require.Equal(t, []domain.Partition{{Start: 0, End: 0}, {Start: 0, End: 0}}, got)
}
