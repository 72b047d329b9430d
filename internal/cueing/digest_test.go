package cueing

import (
	"testing"
)

func TestBuildDigest(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	ctx := Context{
		ActiveConditions: []string{"hypertension", "unknown-condition"},
		RecentSymptoms:   []string{"headache"},
	}

	digest := BuildDigest(ctx, clk.Now(), 10)
	if len(digest.Items) != 4 {
		t.Fatalf("digest items=%d, want 3 hypertension topics + 1 headache topic", len(digest.Items))
	}
	if digest.Items[0].Topic.TopicID != "topic-bp-basics" {
		t.Fatalf("condition topics should come first, got %q", digest.Items[0].Topic.TopicID)
	}
	last := digest.Items[len(digest.Items)-1]
	if last.Topic.TopicID != "topic-headache-types" {
		t.Fatalf("symptom topics should follow, got %q", last.Topic.TopicID)
	}
	if last.Reason == "" || last.Source != "headache" {
		t.Fatalf("digest items should say why they were included: %+v", last)
	}
}

func TestBuildDigestDedupeAndCap(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	ctx := Context{
		ActiveConditions: []string{"hypertension", "Hypertension", "diabetes"},
	}

	digest := BuildDigest(ctx, clk.Now(), 4)
	if len(digest.Items) != 4 {
		t.Fatalf("digest should cap at 4 items, got %d", len(digest.Items))
	}
	seen := make(map[string]bool)
	for _, item := range digest.Items {
		if seen[item.Topic.TopicID] {
			t.Fatalf("duplicate topic %q in digest", item.Topic.TopicID)
		}
		seen[item.Topic.TopicID] = true
	}
}

func TestBuildDigestEmptyContext(t *testing.T) {
	clk := clockAt("2026-03-02T10:00:00Z")
	digest := BuildDigest(Context{}, clk.Now(), 5)
	if len(digest.Items) != 0 {
		t.Fatalf("empty context should produce an empty digest, got %d items", len(digest.Items))
	}
}

func TestTopicsForConditionUnknown(t *testing.T) {
	if topics := TopicsForCondition("rare-syndrome"); topics != nil {
		t.Fatalf("unknown condition should yield nothing, got %v", topics)
	}
}

func TestStructureName(t *testing.T) {
	cases := []struct {
		id   string
		want string
	}{
		{id: "heart", want: "Heart"},
		{id: " Liver ", want: "Liver"},
		{id: "left-phalanx", want: "left-phalanx"},
	}
	for _, tc := range cases {
		if got := StructureName(tc.id); got != tc.want {
			t.Fatalf("StructureName(%q)=%q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestBucketForHour(t *testing.T) {
	cases := []struct {
		hour int
		want TimeOfDayBucket
	}{
		{hour: 6, want: TimeOfDayMorning},
		{hour: 13, want: TimeOfDayAfternoon},
		{hour: 19, want: TimeOfDayEvening},
		{hour: 23, want: TimeOfDayNight},
		{hour: 2, want: TimeOfDayNight},
	}
	for _, tc := range cases {
		if got := BucketForHour(tc.hour); got != tc.want {
			t.Fatalf("BucketForHour(%d)=%q, want %q", tc.hour, got, tc.want)
		}
	}
}
