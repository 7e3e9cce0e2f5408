package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordArticleCascade(t *testing.T) {
	beforeDeleted := testutil.ToFloat64(ArticlesDeletedTotal)
	beforeComments := testutil.ToFloat64(CascadeRowsDeletedTotal.WithLabelValues("comments"))

	RecordArticleCascade(3, 9, 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(ArticlesDeletedTotal)-beforeDeleted)
	assert.Equal(t, 3.0, testutil.ToFloat64(CascadeRowsDeletedTotal.WithLabelValues("comments"))-beforeComments)
}

func TestRecordLike(t *testing.T) {
	before := testutil.ToFloat64(LikesTotal.WithLabelValues("article", "unlike"))
	RecordLike("article", false)
	assert.Equal(t, 1.0, testutil.ToFloat64(LikesTotal.WithLabelValues("article", "unlike"))-before)
}

func TestRecordFollow(t *testing.T) {
	before := testutil.ToFloat64(FollowsTotal.WithLabelValues("tag", "follow"))
	RecordFollow("tag", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(FollowsTotal.WithLabelValues("tag", "follow"))-before)
}

func TestRecordDBQuery(t *testing.T) {
	// Histogram observation must not panic and must register the label.
	RecordDBQuery("article_feed", 25*time.Millisecond)
}
