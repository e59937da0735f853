package api

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestContentWatcher_ClassifyChange(t *testing.T) {
	cw := &ContentWatcher{contentDir: "/srv/site/content"}

	tests := []struct {
		name       string
		path       string
		op         fsnotify.Op
		wantKind   ContentChangeKind
		wantType   ContentChangeType
		collection string
		cardID     string
	}{
		{
			name:       "card created",
			path:       "/srv/site/content/collections/team/abc123.json",
			op:         fsnotify.Create,
			wantKind:   ContentChangeKindCard,
			wantType:   ContentChangeCreated,
			collection: "team",
			cardID:     "abc123",
		},
		{
			name:       "card modified",
			path:       "/srv/site/content/collections/services/s1.json",
			op:         fsnotify.Write,
			wantKind:   ContentChangeKindCard,
			wantType:   ContentChangeModified,
			collection: "services",
			cardID:     "s1",
		},
		{
			name:       "card deleted",
			path:       "/srv/site/content/collections/home/h1.json",
			op:         fsnotify.Remove,
			wantKind:   ContentChangeKindCard,
			wantType:   ContentChangeDeleted,
			collection: "home",
			cardID:     "h1",
		},
		{
			name:       "image uploaded",
			path:       "/srv/site/content/images/teamImages/abc_photo.png",
			op:         fsnotify.Create,
			wantKind:   ContentChangeKindImage,
			wantType:   ContentChangeCreated,
			collection: "team",
		},
		{
			name:     "unrelated file",
			path:     "/srv/site/content/notes.txt",
			op:       fsnotify.Write,
			wantKind: ContentChangeKindUnknown,
		},
		{
			name:     "chmod only",
			path:     "/srv/site/content/collections/team/abc123.json",
			op:       fsnotify.Chmod,
			wantKind: ContentChangeKindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := cw.classifyChange(fsnotify.Event{
				Name: filepath.FromSlash(tt.path),
				Op:   tt.op,
			})

			if change.Kind != tt.wantKind {
				t.Fatalf("kind: got %q, want %q", change.Kind, tt.wantKind)
			}
			if tt.wantKind == ContentChangeKindUnknown {
				return
			}
			if change.Type != tt.wantType {
				t.Errorf("type: got %q, want %q", change.Type, tt.wantType)
			}
			if change.Collection != tt.collection {
				t.Errorf("collection: got %q, want %q", change.Collection, tt.collection)
			}
			if change.CardID != tt.cardID {
				t.Errorf("card id: got %q, want %q", change.CardID, tt.cardID)
			}
		})
	}
}
