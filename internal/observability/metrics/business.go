// Package metrics provides centralized Prometheus metrics for the
// application's business operations. HTTP-level metrics live with the HTTP
// middleware; the metrics here count domain events.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ArticlesPublishedTotal counts successfully published articles.
	ArticlesPublishedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_published_total",
			Help: "Total number of articles published",
		},
	)

	// ArticlesDeletedTotal counts article deletions.
	ArticlesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_deleted_total",
			Help: "Total number of articles deleted",
		},
	)

	// CascadeRowsDeletedTotal counts dependent rows removed by article
	// deletions, by kind.
	CascadeRowsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_rows_deleted_total",
			Help: "Total number of dependent rows removed by article deletions",
		},
		[]string{"kind"},
	)

	// LikesTotal counts like and unlike operations by target type.
	LikesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_total",
			Help: "Total number of like and unlike operations",
		},
		[]string{"target_type", "action"},
	)

	// CommentsPostedTotal counts posted comments and replies.
	CommentsPostedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comments_posted_total",
			Help: "Total number of comments posted",
		},
		[]string{"kind"},
	)

	// FollowsTotal counts follow and unfollow operations by subject kind.
	FollowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follows_total",
			Help: "Total number of follow and unfollow operations",
		},
		[]string{"kind", "action"},
	)

	// ImagesUploadedTotal counts accepted image uploads.
	ImagesUploadedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "images_uploaded_total",
			Help: "Total number of images uploaded",
		},
	)

	// TempImagesReclaimedTotal counts orphaned uploads removed by the
	// cleanup worker.
	TempImagesReclaimedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "temp_images_reclaimed_total",
			Help: "Total number of orphaned temp images reclaimed",
		},
	)
)

// Database metrics track query performance.
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// RecordArticlePublished records a successful article publication.
func RecordArticlePublished() {
	ArticlesPublishedTotal.Inc()
}

// RecordArticleCascade records an article deletion and the dependent rows it
// removed.
func RecordArticleCascade(comments, likes, saves int64) {
	ArticlesDeletedTotal.Inc()
	CascadeRowsDeletedTotal.WithLabelValues("comments").Add(float64(comments))
	CascadeRowsDeletedTotal.WithLabelValues("likes").Add(float64(likes))
	CascadeRowsDeletedTotal.WithLabelValues("saves").Add(float64(saves))
}

// RecordLike records a like or unlike operation.
func RecordLike(targetType string, liked bool) {
	action := "like"
	if !liked {
		action = "unlike"
	}
	LikesTotal.WithLabelValues(targetType, action).Inc()
}

// RecordCommentPosted records a posted comment or reply.
func RecordCommentPosted(isReply bool) {
	kind := "comment"
	if isReply {
		kind = "reply"
	}
	CommentsPostedTotal.WithLabelValues(kind).Inc()
}

// RecordFollow records a follow or unfollow operation on a user or tag.
func RecordFollow(kind string, followed bool) {
	action := "follow"
	if !followed {
		action = "unfollow"
	}
	FollowsTotal.WithLabelValues(kind, action).Inc()
}

// RecordImageUploaded records an accepted image upload.
func RecordImageUploaded() {
	ImagesUploadedTotal.Inc()
}

// RecordTempImagesReclaimed records orphaned uploads removed by the cleanup worker.
func RecordTempImagesReclaimed(count int) {
	TempImagesReclaimedTotal.Add(float64(count))
}

// RecordDBQuery records the duration of a database operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
