package meiligo

import "context"

// Settings sub-routes. Every category follows the same shape: GET reads
// the value, POST replaces it, DELETE resets it to the server default,
// so all typed accessors below share one generic accessor parameterized
// by sub-path and value shape.
const (
	settingRankingRules         = "ranking-rules"
	settingDistinctAttribute    = "distinct-attribute"
	settingSearchableAttributes = "searchable-attributes"
	settingDisplayedAttributes  = "displayed-attributes"
	settingFilterableAttributes = "filterable-attributes"
	settingSortableAttributes   = "sortable-attributes"
	settingStopWords            = "stop-words"
	settingSynonyms             = "synonyms"
)

func (i *Index) settingsPath(sub string) string {
	path := indexPath(i.UID) + "/settings"
	if sub != "" {
		path += "/" + sub
	}
	return path
}

func (i *Index) getSetting(ctx context.Context, sub string, out any) error {
	_, err := i.http.Get(ctx, i.settingsPath(sub), out)
	return err
}

func (i *Index) updateSetting(ctx context.Context, sub string, body any) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Post(ctx, i.settingsPath(sub), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (i *Index) resetSetting(ctx context.Context, sub string) (*TaskInfo, error) {
	var task TaskInfo
	if _, err := i.http.Delete(ctx, i.settingsPath(sub), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Settings reads the whole settings object. The field catalog is owned
// by the server and passed through opaquely.
func (i *Index) Settings(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := i.getSetting(ctx, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSettings enqueues a partial settings update.
func (i *Index) UpdateSettings(ctx context.Context, settings map[string]any) (*TaskInfo, error) {
	return i.updateSetting(ctx, "", settings)
}

// ResetSettings enqueues a reset of all settings to server defaults.
func (i *Index) ResetSettings(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, "")
}

// RankingRules reads the ranking rules.
func (i *Index) RankingRules(ctx context.Context) ([]string, error) {
	var out []string
	if err := i.getSetting(ctx, settingRankingRules, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateRankingRules enqueues a ranking rules replacement.
func (i *Index) UpdateRankingRules(ctx context.Context, rules []string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingRankingRules, rules)
}

// ResetRankingRules enqueues a ranking rules reset.
func (i *Index) ResetRankingRules(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingRankingRules)
}

// DistinctAttribute reads the distinct attribute; nil when unset.
func (i *Index) DistinctAttribute(ctx context.Context) (*string, error) {
	var out *string
	if err := i.getSetting(ctx, settingDistinctAttribute, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDistinctAttribute enqueues a distinct attribute replacement.
func (i *Index) UpdateDistinctAttribute(ctx context.Context, attribute string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingDistinctAttribute, attribute)
}

// ResetDistinctAttribute enqueues a distinct attribute reset.
func (i *Index) ResetDistinctAttribute(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingDistinctAttribute)
}

// SearchableAttributes reads the searchable attributes.
func (i *Index) SearchableAttributes(ctx context.Context) ([]string, error) {
	var out []string
	if err := i.getSetting(ctx, settingSearchableAttributes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSearchableAttributes enqueues a searchable attributes
// replacement.
func (i *Index) UpdateSearchableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingSearchableAttributes, attributes)
}

// ResetSearchableAttributes enqueues a searchable attributes reset.
func (i *Index) ResetSearchableAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingSearchableAttributes)
}

// DisplayedAttributes reads the displayed attributes.
func (i *Index) DisplayedAttributes(ctx context.Context) ([]string, error) {
	var out []string
	if err := i.getSetting(ctx, settingDisplayedAttributes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateDisplayedAttributes enqueues a displayed attributes replacement.
func (i *Index) UpdateDisplayedAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingDisplayedAttributes, attributes)
}

// ResetDisplayedAttributes enqueues a displayed attributes reset.
func (i *Index) ResetDisplayedAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingDisplayedAttributes)
}

// FilterableAttributes reads the filterable attributes.
func (i *Index) FilterableAttributes(ctx context.Context) ([]string, error) {
	var out []string
	if err := i.getSetting(ctx, settingFilterableAttributes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateFilterableAttributes enqueues a filterable attributes
// replacement.
func (i *Index) UpdateFilterableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingFilterableAttributes, attributes)
}

// ResetFilterableAttributes enqueues a filterable attributes reset.
func (i *Index) ResetFilterableAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingFilterableAttributes)
}

// SortableAttributes reads the sortable attributes.
func (i *Index) SortableAttributes(ctx context.Context) ([]string, error) {
	var out []string
	if err := i.getSetting(ctx, settingSortableAttributes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSortableAttributes enqueues a sortable attributes replacement.
func (i *Index) UpdateSortableAttributes(ctx context.Context, attributes []string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingSortableAttributes, attributes)
}

// ResetSortableAttributes enqueues a sortable attributes reset.
func (i *Index) ResetSortableAttributes(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingSortableAttributes)
}

// StopWords reads the stop words.
func (i *Index) StopWords(ctx context.Context) ([]string, error) {
	var out []string
	if err := i.getSetting(ctx, settingStopWords, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStopWords enqueues a stop words replacement.
func (i *Index) UpdateStopWords(ctx context.Context, words []string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingStopWords, words)
}

// ResetStopWords enqueues a stop words reset.
func (i *Index) ResetStopWords(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingStopWords)
}

// Synonyms reads the synonyms mapping.
func (i *Index) Synonyms(ctx context.Context) (map[string][]string, error) {
	var out map[string][]string
	if err := i.getSetting(ctx, settingSynonyms, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSynonyms enqueues a synonyms replacement.
func (i *Index) UpdateSynonyms(ctx context.Context, synonyms map[string][]string) (*TaskInfo, error) {
	return i.updateSetting(ctx, settingSynonyms, synonyms)
}

// ResetSynonyms enqueues a synonyms reset.
func (i *Index) ResetSynonyms(ctx context.Context) (*TaskInfo, error) {
	return i.resetSetting(ctx, settingSynonyms)
}
