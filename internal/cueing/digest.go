package cueing

import (
	"strings"
	"time"
)

// The recommendation digest is the second instance of the cueing
// pattern: a trigger (digest assembly), a template (static
// condition-to-topic tables), a filter (dedupe + size cap) and a
// record (DigestItem). No learned model anywhere; "personalization" is
// table lookup.

type DigestTopic struct {
	TopicID     string      `json:"topic_id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"content_type"`
}

type DigestItem struct {
	Topic  DigestTopic `json:"topic"`
	Reason string      `json:"reason"`
	Source string      `json:"source"`
}

type Digest struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Items       []DigestItem `json:"items"`
}

// TopicsForCondition maps an active condition to curated topics. A
// closed switch: adding a condition is a compile-visible change, and an
// unknown condition yields nothing rather than an error.
func TopicsForCondition(condition string) []DigestTopic {
	switch normalizeTerm(condition) {
	case "hypertension", "high blood pressure":
		return []DigestTopic{
			{TopicID: "topic-bp-basics", Title: "Blood pressure basics", ContentType: ContentTopic},
			{TopicID: "topic-dash-diet", Title: "The DASH eating plan", ContentType: ContentArticle},
			{TopicID: "quiz-bp-readings", Title: "Reading your blood pressure numbers", ContentType: ContentQuiz},
		}
	case "diabetes", "type 2 diabetes", "type-2-diabetes":
		return []DigestTopic{
			{TopicID: "topic-a1c", Title: "What HbA1c tells you", ContentType: ContentTopic},
			{TopicID: "topic-glucose-monitoring", Title: "Glucose monitoring at home", ContentType: ContentArticle},
			{TopicID: "flash-carb-counting", Title: "Carb counting flashcards", ContentType: ContentFlashcard},
		}
	case "asthma":
		return []DigestTopic{
			{TopicID: "topic-inhaler-technique", Title: "Inhaler technique", ContentType: ContentTopic},
			{TopicID: "topic-asthma-triggers", Title: "Common asthma triggers", ContentType: ContentArticle},
		}
	case "migraine":
		return []DigestTopic{
			{TopicID: "topic-migraine-phases", Title: "The four phases of a migraine", ContentType: ContentTopic},
			{TopicID: "topic-headache-diary", Title: "Keeping a headache diary", ContentType: ContentArticle},
		}
	case "hyperlipidemia", "high cholesterol":
		return []DigestTopic{
			{TopicID: "topic-lipid-panel", Title: "Understanding your lipid panel", ContentType: ContentTopic},
			{TopicID: "quiz-ldl-hdl", Title: "LDL vs HDL", ContentType: ContentQuiz},
		}
	case "anxiety":
		return []DigestTopic{
			{TopicID: "topic-anxiety-body", Title: "How anxiety affects the body", ContentType: ContentTopic},
			{TopicID: "topic-breathing", Title: "Breathing exercises that work", ContentType: ContentArticle},
		}
	case "hypothyroidism":
		return []DigestTopic{
			{TopicID: "topic-tsh", Title: "TSH and your thyroid", ContentType: ContentTopic},
		}
	default:
		return nil
	}
}

// TopicsForSymptom maps a recently logged symptom to follow-up topics.
func TopicsForSymptom(symptom string) []DigestTopic {
	switch normalizeTerm(symptom) {
	case "headache":
		return []DigestTopic{
			{TopicID: "topic-headache-types", Title: "Types of headache", ContentType: ContentTopic},
		}
	case "fatigue":
		return []DigestTopic{
			{TopicID: "topic-fatigue-causes", Title: "Common causes of fatigue", ContentType: ContentTopic},
		}
	case "chest pain":
		return []DigestTopic{
			{TopicID: "topic-chest-pain", Title: "Chest pain: when to seek help", ContentType: ContentArticle},
		}
	case "dizziness":
		return []DigestTopic{
			{TopicID: "topic-dizziness", Title: "Dizziness and balance", ContentType: ContentTopic},
		}
	case "nausea":
		return []DigestTopic{
			{TopicID: "topic-nausea", Title: "Managing nausea", ContentType: ContentTopic},
		}
	default:
		return nil
	}
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BuildDigest assembles a digest from the user's context snapshot:
// topics for each active condition first, then for recent symptoms,
// deduplicated by topic id and capped at maxItems. Deterministic given
// the same context.
func BuildDigest(ctx Context, now time.Time, maxItems int) Digest {
	if maxItems <= 0 {
		maxItems = 5
	}
	digest := Digest{GeneratedAt: now.UTC()}
	seen := make(map[string]bool)

	add := func(topics []DigestTopic, reason, source string) {
		for _, t := range topics {
			if len(digest.Items) >= maxItems {
				return
			}
			if seen[t.TopicID] {
				continue
			}
			seen[t.TopicID] = true
			digest.Items = append(digest.Items, DigestItem{Topic: t, Reason: reason, Source: source})
		}
	}

	for _, cond := range ctx.ActiveConditions {
		add(TopicsForCondition(cond), "Because "+normalizeTerm(cond)+" is in your health profile", cond)
		if len(digest.Items) >= maxItems {
			return digest
		}
	}
	for _, sym := range ctx.RecentSymptoms {
		add(TopicsForSymptom(sym), "Because you recently logged "+normalizeTerm(sym), sym)
		if len(digest.Items) >= maxItems {
			return digest
		}
	}
	return digest
}
