package app

import (
	"context"
	"testing"

	"itemtrace-registry-service/internal/domain/item"
	"itemtrace-registry-service/internal/domain/shared"
	"itemtrace-registry-service/internal/ports/inbound"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type RegistryServiceSuite struct {
	suite.Suite
	repo    *fakeItemRepo
	service *RegistryService
	items   *ItemService
	ctx     context.Context
}

func (s *RegistryServiceSuite) SetupTest() {
	s.repo = newFakeItemRepo()
	s.service = NewRegistryService(RegistryServiceParams{
		ItemRepo: s.repo,
		Logger:   zerolog.Nop(),
	})
	s.items = NewItemService(ItemServiceParams{
		ItemRepo: s.repo,
		Logger:   zerolog.Nop(),
	})
	s.ctx = context.Background()
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) seed(userID uuid.UUID, payload map[string]any) *item.Item {
	created, err := s.items.CreateItem(s.ctx, userID, payload)
	s.Require().NoError(err)
	return created
}

func (s *RegistryServiceSuite) TestSearchSpansAllUsers() {
	alice := uuid.New()
	bob := uuid.New()
	s.seed(alice, map[string]any{"name": "Road Bike", "serial_number": "SN-A", "status": "stolen"})
	s.seed(bob, map[string]any{"name": "City Bike", "serial_number": "SN-B", "status": "safe"})

	page, err := s.service.Search(s.ctx, inbound.SearchRequest{Query: "bike"})
	s.Require().NoError(err)
	s.Len(page.Items, 2)
	s.Equal(2, page.Count)
}

func (s *RegistryServiceSuite) TestSearchBySerialNumberExact() {
	owner := uuid.New()
	wanted := s.seed(owner, map[string]any{"name": "Camera", "serial_number": "CAM-42"})
	s.seed(owner, map[string]any{"name": "Camera", "serial_number": "CAM-43"})

	page, err := s.service.Search(s.ctx, inbound.SearchRequest{SerialNumber: " CAM-42 "})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(wanted.ID, page.Items[0].ID)
}

func (s *RegistryServiceSuite) TestSearchQueryCoversSerialAndCategory() {
	owner := uuid.New()
	s.seed(owner, map[string]any{"name": "Phone", "serial_number": "ZX-900"})
	s.seed(owner, map[string]any{"name": "Tablet", "serial_number": "SN-1", "category": "zx gadgets"})
	s.seed(owner, map[string]any{"name": "Watch", "serial_number": "SN-2"})

	page, err := s.service.Search(s.ctx, inbound.SearchRequest{Query: "zx"})
	s.Require().NoError(err)
	s.Len(page.Items, 2)
}

func (s *RegistryServiceSuite) TestSearchStatusFilter() {
	owner := uuid.New()
	s.seed(owner, map[string]any{"name": "A", "serial_number": "SN-1", "status": "stolen"})
	s.seed(owner, map[string]any{"name": "B", "serial_number": "SN-2", "status": "safe"})
	s.seed(owner, map[string]any{"name": "C", "serial_number": "SN-3"})

	page, err := s.service.Search(s.ctx, inbound.SearchRequest{Status: " STOLEN "})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal("A", page.Items[0].Name)
}

func (s *RegistryServiceSuite) TestSearchInvalidStatus() {
	_, err := s.service.Search(s.ctx, inbound.SearchRequest{Status: "bogus"})
	s.ErrorIs(err, shared.ErrInvalidStatus)
}

func (s *RegistryServiceSuite) TestSearchPaginationCursors() {
	owner := uuid.New()
	for i := 0; i < 5; i++ {
		s.seed(owner, map[string]any{"name": "Item", "serial_number": uuid.NewString()})
	}

	page, err := s.service.Search(s.ctx, inbound.SearchRequest{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Len(page.Items, 2)
	s.Equal(5, page.Count)
	s.Require().NotNil(page.Next)
	s.Equal(4, *page.Next)
	s.Require().NotNil(page.Previous)
	s.Equal(0, *page.Previous)
}

func (s *RegistryServiceSuite) TestSearchBlankFiltersIgnored() {
	owner := uuid.New()
	s.seed(owner, map[string]any{"name": "A", "serial_number": "SN-1"})

	page, err := s.service.Search(s.ctx, inbound.SearchRequest{
		Query:        "  ",
		Category:     " ",
		Status:       "",
		SerialNumber: "\t",
	})
	s.Require().NoError(err)
	s.Len(page.Items, 1)
}
