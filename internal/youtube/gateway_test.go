package youtube

import (
	"errors"
	"testing"

	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/habitloop/curator/internal/domain"
)

func TestMetadataFromItems(t *testing.T) {
	full := &youtubeapi.Video{
		Id: "dQw4w9WgXcQ",
		Snippet: &youtubeapi.VideoSnippet{
			Title:        "Morning routine",
			ChannelTitle: "Coach",
			Description:  "five minute start",
		},
		ContentDetails: &youtubeapi.VideoContentDetails{Duration: "PT5M"},
	}
	bare := &youtubeapi.Video{Id: "aaaaaaaaaaa"} // no snippet

	t.Run("converts and skips malformed", func(t *testing.T) {
		metas, err := metadataFromItems([]*youtubeapi.Video{full, bare})
		if err != nil {
			t.Fatalf("err = %v", err)
		}
		if len(metas) != 1 {
			t.Fatalf("got %d metas, want 1", len(metas))
		}
		if metas[0].ID != "dQw4w9WgXcQ" || metas[0].DurationRaw != "PT5M" {
			t.Errorf("meta = %+v", metas[0])
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		if _, err := metadataFromItems(nil); !errors.Is(err, domain.ErrVideoNotFound) {
			t.Errorf("err = %v, want ErrVideoNotFound", err)
		}
	})

	t.Run("all items malformed", func(t *testing.T) {
		// Items present but none usable must still be not-found, never an
		// empty success a caller would index into.
		metas, err := metadataFromItems([]*youtubeapi.Video{bare, {Id: "bbbbbbbbbbb"}})
		if !errors.Is(err, domain.ErrVideoNotFound) {
			t.Errorf("err = %v, want ErrVideoNotFound", err)
		}
		if metas != nil {
			t.Errorf("metas = %v, want nil", metas)
		}
	})
}
