package usecase

import (
	"context"

	"github.com/brindez/controle-brindes/internal/domain/repository"
	"github.com/brindez/controle-brindes/internal/infrastructure/cache"
)

// Chaves do memo.
const (
	keyCategories = "categorias"
	keyUnits      = "unidades"
	keyBranches   = "filiais"
)

// LookupService fornece os nomes ativos de categorias, unidades e filiais,
// guardando-os no memo até expirar ou até uma escrita invalidar a chave.
type LookupService struct {
	branchRepo  repository.BranchRepository
	catalogRepo repository.CatalogRepository
	memo        *cache.Memo
}

// NewLookupService constrói o serviço.
func NewLookupService(branchRepo repository.BranchRepository, catalogRepo repository.CatalogRepository, memo *cache.Memo) *LookupService {
	return &LookupService{branchRepo: branchRepo, catalogRepo: catalogRepo, memo: memo}
}

// Categories nomes das categorias ativas.
func (s *LookupService) Categories(ctx context.Context) ([]string, error) {
	return s.memo.Strings(keyCategories, func() ([]string, error) {
		list, err := s.catalogRepo.ListCategories(ctx, true)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(list))
		for _, c := range list {
			out = append(out, c.Name)
		}
		return out, nil
	})
}

// Units códigos das unidades ativas.
func (s *LookupService) Units(ctx context.Context) ([]string, error) {
	return s.memo.Strings(keyUnits, func() ([]string, error) {
		list, err := s.catalogRepo.ListUnits(ctx, true)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(list))
		for _, u := range list {
			out = append(out, u.Code)
		}
		return out, nil
	})
}

// Branches nomes das filiais ativas.
func (s *LookupService) Branches(ctx context.Context) ([]string, error) {
	return s.memo.Strings(keyBranches, func() ([]string, error) {
		list, err := s.branchRepo.List(ctx, true)
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(list))
		for _, b := range list {
			out = append(out, b.Name)
		}
		return out, nil
	})
}

// Invalidate descarta as listas guardadas.
func (s *LookupService) Invalidate(keys ...string) {
	s.memo.Invalidate(keys...)
}
