package service

import "github.com/outlierlens/outlierlens-go/internal/model"

// defaultBaseline guards division by zero for (channel, category)
// combinations that have no items. Explicit policy, not a fallback: an
// empty partition scores against 1.
const defaultBaseline = 1.0

type partitionKey struct {
	channelID string
	category  model.Category
}

// Score populates OutlierScore on every video in the batch.
//
// Videos are partitioned by (channel, category); each partition's baseline
// is the mean view count across the partition, and every video scores
// view_count / baseline against its own partition. The score answers how a
// video performs relative to its own channel's typical video of the same
// category, not globally. Baselines are recomputed from scratch on every
// call and never blended with a previous batch.
func Score(videos []model.Video) []model.Video {
	sums := make(map[partitionKey]int64)
	counts := make(map[partitionKey]int)
	for _, v := range videos {
		k := partitionKey{v.ChannelID, v.Category}
		sums[k] += v.ViewCount
		counts[k]++
	}

	baselines := make(map[partitionKey]float64, len(sums))
	for k, sum := range sums {
		baselines[k] = float64(sum) / float64(counts[k])
	}

	for i := range videos {
		k := partitionKey{videos[i].ChannelID, videos[i].Category}
		baseline, ok := baselines[k]
		if !ok {
			baseline = defaultBaseline
		}
		if baseline <= 0 {
			videos[i].OutlierScore = 0
			continue
		}
		videos[i].OutlierScore = float64(videos[i].ViewCount) / baseline
	}

	return videos
}
