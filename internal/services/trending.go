package services

import (
	"sort"
	"time"

	"github.com/roywong35/human-art-social-sub000/internal/db"
	"github.com/roywong35/human-art-social-sub000/internal/models"
	"github.com/roywong35/human-art-social-sub000/internal/utils"
)

// 趋势榜窗口与缓存参数
const (
	TrendingLimit = 10 // 榜单最大长度

	burstWindow     = 2 * time.Hour       // 突发窗口
	risingWindow    = 24 * time.Hour      // 上升窗口
	sustainedWindow = 7 * 24 * time.Hour  // 持续窗口
	fallbackWindow  = 30 * 24 * time.Hour // 冷启动兜底窗口

	// 窗口内合格话题少于该数量时触发兜底补位
	minQualified = 5

	trendingCacheKey = "trending:hashtags"
	trendingCacheTTL = 5 * time.Minute
)

// 只有原创和引用计入趋势，回复/转发不算，避免低成本刷量抬热度
var trendingKinds = []models.PostKind{models.PostKindOriginal, models.PostKindQuote}

// HashtagScore 单个话题的多窗口聚合值
type HashtagScore struct {
	Name             string `json:"name"`
	Burst            int    `json:"burst"`             // 2 小时内的帖子数
	Rising           int    `json:"rising"`            // 24 小时内的帖子数
	Sustained        int    `json:"sustained"`         // 7 天内的帖子数
	RecentEngagement int    `json:"recent_engagement"` // 24 小时内点赞+回复
	TotalEngagement  int    `json:"total_engagement"`  // 7 天内点赞+回复+转发
}

// GetTrending 返回趋势话题榜，带 5 分钟 TTL 缓存。
// 计算本身是当前数据的纯函数，并发重复计算无害，缓存写入后写者生效。
func GetTrending(limit int) ([]HashtagScore, error) {
	if limit <= 0 || limit > TrendingLimit {
		limit = TrendingLimit
	}

	if cached := utils.GetCache().Get(trendingCacheKey); cached != nil {
		if scores, ok := cached.([]HashtagScore); ok {
			return trimScores(scores, limit), nil
		}
	}

	scores, err := ComputeTrending(time.Now())
	if err != nil {
		return nil, err
	}
	utils.GetCache().Set(trendingCacheKey, scores, trendingCacheTTL)

	return trimScores(scores, limit), nil
}

// InvalidateTrendingCache 强制下次读取重新计算
func InvalidateTrendingCache() {
	utils.GetCache().Delete(trendingCacheKey)
}

func trimScores(scores []HashtagScore, limit int) []HashtagScore {
	if len(scores) > limit {
		return scores[:limit]
	}
	return scores
}

// ComputeTrending 计算趋势榜。
// 候选话题要求突发或上升窗口内有活动；排序键从左到右依次比较：
// burst > rising > recentEngagement > sustained > totalEngagement，最后按名字稳定。
// 合格话题不足 5 个时用 30 天窗口补位，已有话题不重复，补到 10 个或补完为止。
func ComputeTrending(now time.Time) ([]HashtagScore, error) {
	scores := make(map[string]*HashtagScore)
	get := func(name string) *HashtagScore {
		s, ok := scores[name]
		if !ok {
			s = &HashtagScore{Name: name}
			scores[name] = s
		}
		return s
	}

	burst, err := tagPostCounts(now.Add(-burstWindow))
	if err != nil {
		return nil, err
	}
	for name, n := range burst {
		get(name).Burst = n
	}

	rising, err := tagPostCounts(now.Add(-risingWindow))
	if err != nil {
		return nil, err
	}
	for name, n := range rising {
		get(name).Rising = n
	}

	sustained, err := tagPostCounts(now.Add(-sustainedWindow))
	if err != nil {
		return nil, err
	}
	for name, n := range sustained {
		get(name).Sustained = n
	}

	recentEngagement, err := tagEngagementCounts(now.Add(-risingWindow), false)
	if err != nil {
		return nil, err
	}
	for name, n := range recentEngagement {
		get(name).RecentEngagement = n
	}

	totalEngagement, err := tagEngagementCounts(now.Add(-sustainedWindow), true)
	if err != nil {
		return nil, err
	}
	for name, n := range totalEngagement {
		get(name).TotalEngagement = n
	}

	qualified := make([]HashtagScore, 0, len(scores))
	for _, s := range scores {
		if s.Burst > 0 || s.Rising > 0 {
			qualified = append(qualified, *s)
		}
	}

	sort.Slice(qualified, func(i, j int) bool {
		a, b := qualified[i], qualified[j]
		if a.Burst != b.Burst {
			return a.Burst > b.Burst
		}
		if a.Rising != b.Rising {
			return a.Rising > b.Rising
		}
		if a.RecentEngagement != b.RecentEngagement {
			return a.RecentEngagement > b.RecentEngagement
		}
		if a.Sustained != b.Sustained {
			return a.Sustained > b.Sustained
		}
		if a.TotalEngagement != b.TotalEngagement {
			return a.TotalEngagement > b.TotalEngagement
		}
		return a.Name < b.Name
	})

	if len(qualified) < minQualified {
		qualified, err = appendFallback(qualified, scores, now)
		if err != nil {
			return nil, err
		}
	}

	return trimScores(qualified, TrendingLimit), nil
}

// fallbackEntry 兜底排序用的 30 天聚合
type fallbackEntry struct {
	name       string
	count      int
	engagement int
}

// appendFallback 数据稀疏时的补位：按 30 天帖子数和互动量排序，跳过已入榜话题
func appendFallback(result []HashtagScore, scores map[string]*HashtagScore, now time.Time) ([]HashtagScore, error) {
	counts, err := tagPostCounts(now.Add(-fallbackWindow))
	if err != nil {
		return nil, err
	}
	engagement, err := tagEngagementCounts(now.Add(-fallbackWindow), true)
	if err != nil {
		return nil, err
	}

	present := make(map[string]bool, len(result))
	for _, s := range result {
		present[s.Name] = true
	}

	pool := make([]fallbackEntry, 0, len(counts))
	for name, n := range counts {
		if present[name] {
			continue
		}
		pool = append(pool, fallbackEntry{name: name, count: n, engagement: engagement[name]})
	}

	sort.Slice(pool, func(i, j int) bool {
		if pool[i].count != pool[j].count {
			return pool[i].count > pool[j].count
		}
		if pool[i].engagement != pool[j].engagement {
			return pool[i].engagement > pool[j].engagement
		}
		return pool[i].name < pool[j].name
	})

	for _, e := range pool {
		if len(result) >= TrendingLimit {
			break
		}
		if s, ok := scores[e.name]; ok {
			result = append(result, *s)
		} else {
			result = append(result, HashtagScore{Name: e.name})
		}
	}
	return result, nil
}

type nameCount struct {
	Name  string
	Count int
}

// tagPostCounts 统计窗口内每个话题下合格帖子的去重数量。
// 窗口判断用关联行自己的时间戳，不用帖子时间
func tagPostCounts(since time.Time) (map[string]int, error) {
	var rows []nameCount
	err := db.DB.Table("post_hashtags").
		Select("hashtags.name AS name, COUNT(DISTINCT post_hashtags.post_id) AS count").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Joins("JOIN posts ON posts.id = post_hashtags.post_id").
		Where("post_hashtags.created_at >= ?", since).
		Where("posts.kind IN ?", trendingKinds).
		Where("posts.soft_deleted = ? AND posts.removed = ?", false, false).
		Group("hashtags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// tagEngagementCounts 统计窗口内每个话题的互动量。
// 点赞+回复；includeReposts 为 true 时再加上转发（总互动口径）
func tagEngagementCounts(since time.Time, includeReposts bool) (map[string]int, error) {
	likes, err := tagLikeCounts(since)
	if err != nil {
		return nil, err
	}
	replies, err := tagReplyCounts(since)
	if err != nil {
		return nil, err
	}

	total := make(map[string]int, len(likes)+len(replies))
	for name, n := range likes {
		total[name] += n
	}
	for name, n := range replies {
		total[name] += n
	}

	if includeReposts {
		reposts, err := tagRepostCounts(since)
		if err != nil {
			return nil, err
		}
		for name, n := range reposts {
			total[name] += n
		}
	}
	return total, nil
}

func tagLikeCounts(since time.Time) (map[string]int, error) {
	var rows []nameCount
	err := db.DB.Table("likes").
		Select("hashtags.name AS name, COUNT(likes.id) AS count").
		Joins("JOIN post_hashtags ON post_hashtags.post_id = likes.post_id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("likes.created_at >= ?", since).
		Where("posts.kind IN ?", trendingKinds).
		Where("posts.soft_deleted = ? AND posts.removed = ?", false, false).
		Group("hashtags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func tagReplyCounts(since time.Time) (map[string]int, error) {
	var rows []nameCount
	err := db.DB.Table("posts AS replies").
		Select("hashtags.name AS name, COUNT(replies.id) AS count").
		Joins("JOIN post_hashtags ON post_hashtags.post_id = replies.parent_id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Joins("JOIN posts ON posts.id = post_hashtags.post_id").
		Where("replies.kind = ? AND replies.created_at >= ?", models.PostKindReply, since).
		Where("posts.kind IN ?", trendingKinds).
		Where("posts.soft_deleted = ? AND posts.removed = ?", false, false).
		Group("hashtags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func tagRepostCounts(since time.Time) (map[string]int, error) {
	var rows []nameCount
	err := db.DB.Table("posts AS reposts").
		Select("hashtags.name AS name, COUNT(reposts.id) AS count").
		Joins("JOIN post_hashtags ON post_hashtags.post_id = reposts.referenced_id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Joins("JOIN posts ON posts.id = post_hashtags.post_id").
		Where("reposts.kind = ? AND reposts.created_at >= ?", models.PostKindRepost, since).
		Where("posts.kind IN ?", trendingKinds).
		Where("posts.soft_deleted = ? AND posts.removed = ?", false, false).
		Group("hashtags.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

func toCountMap(rows []nameCount) map[string]int {
	m := make(map[string]int, len(rows))
	for _, r := range rows {
		m[r.Name] = r.Count
	}
	return m
}
