package service

import (
	"math"
	"testing"

	"github.com/outlierlens/outlierlens-go/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_AgainstPartitionMean(t *testing.T) {
	videos := []model.Video{
		{VideoID: "a", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 100},
		{VideoID: "b", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 300},
	}

	scored := Score(videos)

	// Mean is 200, so 100 -> 0.5 and 300 -> 1.5.
	if !almostEqual(scored[0].OutlierScore, 0.5) {
		t.Errorf("score for a = %v, want 0.5", scored[0].OutlierScore)
	}
	if !almostEqual(scored[1].OutlierScore, 1.5) {
		t.Errorf("score for b = %v, want 1.5", scored[1].OutlierScore)
	}
}

func TestScore_PartitionsByChannelAndCategory(t *testing.T) {
	videos := []model.Video{
		{VideoID: "a", ChannelID: "ch1", Category: model.CategoryShort, ViewCount: 1000},
		{VideoID: "b", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 10},
		{VideoID: "c", ChannelID: "ch2", Category: model.CategoryShort, ViewCount: 50},
	}

	scored := Score(videos)

	// Each video is alone in its partition, so every score is 1.0 regardless
	// of how the raw view counts compare across partitions.
	for _, v := range scored {
		if !almostEqual(v.OutlierScore, 1.0) {
			t.Errorf("score for %s = %v, want 1.0 (single-video partition)", v.VideoID, v.OutlierScore)
		}
	}
}

func TestScore_ZeroBaseline(t *testing.T) {
	videos := []model.Video{
		{VideoID: "a", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 0},
		{VideoID: "b", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 0},
	}

	scored := Score(videos)

	for _, v := range scored {
		if v.OutlierScore != 0 {
			t.Errorf("score for %s = %v, want 0 (zero baseline)", v.VideoID, v.OutlierScore)
		}
	}
}

func TestScore_MeanOfScoresIsOne(t *testing.T) {
	videos := []model.Video{
		{VideoID: "a", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 120},
		{VideoID: "b", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 7},
		{VideoID: "c", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 993},
		{VideoID: "d", ChannelID: "ch1", Category: model.CategoryRegular, ViewCount: 45},
	}

	scored := Score(videos)

	var sum float64
	for _, v := range scored {
		sum += v.OutlierScore
	}
	if !almostEqual(sum/float64(len(scored)), 1.0) {
		t.Errorf("mean score = %v, want 1.0", sum/float64(len(scored)))
	}
}

func TestScore_EmptyBatch(t *testing.T) {
	if got := Score(nil); len(got) != 0 {
		t.Errorf("Score(nil) = %v, want empty", got)
	}
}
