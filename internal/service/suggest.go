package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/forkful/forkful-backend/internal/models"
)

const (
	suggestionTTL   = 5 * time.Minute
	maxSuggestions  = 8
	suggestionScope = "suggestions:"
)

// RecipeSuggestion pairs a candidate recipe with its fridge match.
type RecipeSuggestion struct {
	Recipe models.Recipe `json:"recipe"`
	IngredientMatch
}

// SuggestionService ranks recipes against a user's fridge contents. A
// short-lived redis entry caches the result per user; any fridge or
// recipe write for that user should invalidate it. A nil redis client
// disables caching.
type SuggestionService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewSuggestionService(db *gorm.DB, rdb *redis.Client) *SuggestionService {
	return &SuggestionService{db: db, redis: rdb}
}

func suggestionKey(userID uuid.UUID) string {
	return suggestionScope + userID.String()
}

// Suggest computes fridge-ranked recipe suggestions: candidates are the
// user's own recipes plus public ones, scored by ingredient match, filtered
// to a positive score and sorted descending, capped at 8.
func (s *SuggestionService) Suggest(ctx context.Context, userID uuid.UUID) ([]RecipeSuggestion, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, suggestionKey(userID)).Bytes(); err == nil {
			var suggestions []RecipeSuggestion
			if err := json.Unmarshal(cached, &suggestions); err == nil {
				return suggestions, nil
			}
		}
	}

	var fridge []models.FridgeIngredient
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&fridge).Error; err != nil {
		return nil, err
	}
	fridgeNames := make([]string, len(fridge))
	for i, ing := range fridge {
		fridgeNames[i] = ing.Name
	}

	var recipes []models.Recipe
	err := withChildren(s.db.WithContext(ctx)).
		Where("is_public = ? OR user_id = ?", true, userID).
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	suggestions := make([]RecipeSuggestion, 0, len(recipes))
	for _, recipe := range recipes {
		names := make([]string, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			names[i] = ing.Name
		}
		match := MatchIngredients(fridgeNames, names)
		if match.MatchPercentage > 0 {
			suggestions = append(suggestions, RecipeSuggestion{Recipe: recipe, IngredientMatch: match})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].MatchPercentage > suggestions[j].MatchPercentage
	})
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	if s.redis != nil {
		if payload, err := json.Marshal(suggestions); err == nil {
			if err := s.redis.Set(ctx, suggestionKey(userID), payload, suggestionTTL).Err(); err != nil {
				log.Printf("failed to cache suggestions for %s: %v", userID, err)
			}
		}
	}

	return suggestions, nil
}

// Invalidate drops the cached suggestions for a user. Called after fridge
// or recipe writes; a stale read between invalidation and the next compute
// is tolerated.
func (s *SuggestionService) Invalidate(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, suggestionKey(userID)).Err(); err != nil {
		log.Printf("failed to invalidate suggestions for %s: %v", userID, err)
	}
}
