package utils

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Now()

	tag := GenerateETag(id, at)
	if !strings.HasPrefix(tag, `"`) || !strings.HasSuffix(tag, `"`) {
		t.Errorf("etag must be quoted: %s", tag)
	}

	if tag != GenerateETag(id, at) {
		t.Error("etag must be stable for the same id and time")
	}
	if tag == GenerateETag(id, at.Add(time.Second)) {
		t.Error("etag must change when the document changes")
	}
	if tag == GenerateETag(primitive.NewObjectID(), at) {
		t.Error("etag must differ across documents")
	}
}
