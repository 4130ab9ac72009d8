// Copyright (c) 2026 ElQasr. All rights reserved.
// Author: mohamed.magdy@elqasr-dev.com

package mainproject

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/mutate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/notify"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/apperr"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/constants"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/platform/ctxutil"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/querycache"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/internal/viewstate"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/localized"
	"github.com/mohamedmagdy99/elqasr-portfolio-sub000/pkg/pagination"
)

type fakeStore struct {
	listCalls   int
	lastQuery   url.Values
	listItems   []MainProject
	listMeta    pagination.Meta
	listErr     error
	unitsCalls  int
	units       []Unit
	unitsErr    error
	updateCalls int
}

func (fake *fakeStore) List(context context.Context, query url.Values) ([]MainProject, pagination.Meta, error) {
	fake.listCalls++
	fake.lastQuery = query
	return fake.listItems, fake.listMeta, fake.listErr
}

func (fake *fakeStore) Get(context context.Context, id string) (*MainProject, error) {
	return nil, nil
}

func (fake *fakeStore) ListUnits(context context.Context, id string) ([]Unit, error) {
	fake.unitsCalls++
	return fake.units, fake.unitsErr
}

func (fake *fakeStore) Create(context context.Context, token string, input Input) (*MainProject, error) {
	return &MainProject{ID: "created", State: input.State}, nil
}

func (fake *fakeStore) Update(context context.Context, token, id string, input Input) (*MainProject, error) {
	fake.updateCalls++
	return &MainProject{ID: id, State: input.State}, nil
}

func (fake *fakeStore) Delete(context context.Context, token, id string) error {
	return nil
}

func newTestService(fake *fakeStore) (*Service, *notify.Center) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cache := querycache.New(time.Minute, log)
	notices := notify.NewCenter(3 * time.Second)
	runner := mutate.NewRunner(cache, notices, log)
	return NewService(fake, cache, runner, log), notices
}

func TestList_StateFilterReachesBackendQuery(t *testing.T) {
	fake := &fakeStore{
		listItems: []MainProject{{ID: "m1", State: StateAvailable}},
		listMeta:  pagination.Meta{CurrentPage: 1, TotalPages: 1},
	}
	service, _ := newTestService(fake)

	state := viewstate.NewState(constants.ResourceMainProjects, 9)
	state.SetFilter(viewstate.FilterStatus, "available")

	_ = service.List(context.Background(), state)

	require.NotNil(t, fake.lastQuery)
	assert.Equal(t, "available", fake.lastQuery.Get("status"))
	assert.Equal(t, "1", fake.lastQuery.Get("page"))
}

func TestList_FilteredAndUnfilteredCacheSeparately(t *testing.T) {
	fake := &fakeStore{
		listItems: []MainProject{{ID: "m1"}},
		listMeta:  pagination.Meta{CurrentPage: 1, TotalPages: 1},
	}
	service, _ := newTestService(fake)

	unfiltered := viewstate.NewState(constants.ResourceMainProjects, 9)
	_ = service.List(context.Background(), unfiltered)

	filtered := viewstate.NewState(constants.ResourceMainProjects, 9)
	filtered.SetFilter(viewstate.FilterStatus, "sold")
	_ = service.List(context.Background(), filtered)

	assert.Equal(t, 2, fake.listCalls, "distinct filters are distinct cache keys")

	// Re-reading either state is now a cache hit.
	_ = service.List(context.Background(), unfiltered)
	_ = service.List(context.Background(), filtered)
	assert.Equal(t, 2, fake.listCalls)
}

func TestUnits_SoftFailsToEmpty(t *testing.T) {
	fake := &fakeStore{unitsErr: errors.New("backend down")}
	service, _ := newTestService(fake)

	units := service.Units(context.Background(), "m1")
	assert.NotNil(t, units)
	assert.Empty(t, units)
}

func TestUnits_CachedPerDevelopment(t *testing.T) {
	fake := &fakeStore{units: []Unit{{ID: "u1"}}}
	service, _ := newTestService(fake)

	first := service.Units(context.Background(), "m1")
	second := service.Units(context.Background(), "m1")

	assert.Equal(t, 1, fake.unitsCalls)
	assert.Equal(t, first, second)
}

func TestUnits_HighlightsFollowRequestLocale(t *testing.T) {
	fake := &fakeStore{units: []Unit{{
		ID: "u1",
		Features: localized.StringList{
			English: []string{"Sea view", "Private garden"},
			Arabic:  []string{"إطلالة بحرية", "حديقة خاصة"},
		},
	}}}
	service, _ := newTestService(fake)

	english := service.Units(context.Background(), "m1")
	require.Len(t, english, 1)
	assert.Equal(t, []string{"Sea view", "Private garden"}, english[0].Highlights)

	arabic := service.Units(ctxutil.WithLocale(context.Background(), localized.Arabic), "m1")
	require.Len(t, arabic, 1)
	assert.Equal(t, []string{"إطلالة بحرية", "حديقة خاصة"}, arabic[0].Highlights)

	// Both reads were served from the same cached entry.
	assert.Equal(t, 1, fake.unitsCalls)
}

func TestUpdate_StateFlipInvalidatesListings(t *testing.T) {
	fake := &fakeStore{
		listItems: []MainProject{{ID: "m1", State: StateAvailable}},
		listMeta:  pagination.Meta{CurrentPage: 1, TotalPages: 1},
	}
	service, notices := newTestService(fake)

	state := viewstate.NewState(constants.ResourceMainProjects, 9)
	_ = service.List(context.Background(), state)
	require.Equal(t, 1, fake.listCalls)

	updated, err := service.Update(context.Background(), "token", "m1", Input{
		Name:        localized.ByLocale("Compound", "كمبوند"),
		Description: localized.Plain("desc"),
		State:       StateSold,
	})
	require.NoError(t, err)
	assert.Equal(t, StateSold, updated.State)

	_ = service.List(context.Background(), state)
	assert.Equal(t, 2, fake.listCalls, "a state flip must refetch the listings")

	active := notices.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Main project updated", active[0].Message)
}

func TestCreate_RejectsUnknownState(t *testing.T) {
	service, _ := newTestService(&fakeStore{})

	_, err := service.Create(context.Background(), "token", Input{
		Name:        localized.Plain("Compound"),
		Description: localized.Plain("desc"),
		State:       State("reserved"),
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}
