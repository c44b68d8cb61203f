package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brindez/controle-brindes/internal/domain"
	"github.com/brindez/controle-brindes/internal/domain/entity"
	"github.com/brindez/controle-brindes/internal/domain/repository"
)

type seedBranch struct {
	number, name, city, address, phone string
}

var defaultBranches = []seedBranch{
	{"001", "Matriz", "São Paulo", "Rua Principal, 123", "(11) 1234-5678"},
	{"002", "Filial São Paulo", "São Paulo", "Av. Paulista, 456", "(11) 2345-6789"},
	{"003", "Filial Rio de Janeiro", "Rio de Janeiro", "Rua Copacabana, 789", "(21) 3456-7890"},
	{"004", "Filial Belo Horizonte", "Belo Horizonte", "Av. Afonso Pena, 321", "(31) 4567-8901"},
}

var defaultCategories = [][2]string{
	{"Canetas", "Canetas e materiais de escrita"},
	{"Chaveiros", "Chaveiros personalizados"},
	{"Camisetas", "Camisetas e vestuário"},
	{"Blocos", "Blocos de anotação e papelaria"},
	{"Eletrônicos", "Dispositivos eletrônicos"},
	{"Outros", "Outros itens diversos"},
}

var defaultUnits = [][2]string{
	{"UN", "Unidade"},
	{"KG", "Quilograma"},
	{"LT", "Litro"},
	{"CX", "Caixa"},
	{"PC", "Peça"},
	{"MT", "Metro"},
	{"CM", "Centímetro"},
}

// Seed cadastra filiais, categorias e unidades padrão quando a respectiva tabela está vazia.
func Seed(ctx context.Context, branches repository.BranchRepository, catalog repository.CatalogRepository) error {
	now := time.Now()

	existing, err := branches.List(ctx, false)
	if err != nil {
		return fmt.Errorf("seed: listar filiais: %w", err)
	}
	if len(existing) == 0 {
		for _, b := range defaultBranches {
			err := branches.Create(ctx, &entity.Branch{
				ID:        uuid.New().String(),
				Number:    b.number,
				Name:      b.name,
				City:      b.city,
				Address:   b.address,
				Phone:     b.phone,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil && !errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("seed: filial %s: %w", b.name, err)
			}
		}
	}

	cats, err := catalog.ListCategories(ctx, false)
	if err != nil {
		return fmt.Errorf("seed: listar categorias: %w", err)
	}
	if len(cats) == 0 {
		for _, c := range defaultCategories {
			err := catalog.CreateCategory(ctx, &entity.Category{
				ID:          uuid.New().String(),
				Name:        c[0],
				Description: c[1],
				Active:      true,
				CreatedAt:   now,
			})
			if err != nil && !errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("seed: categoria %s: %w", c[0], err)
			}
		}
	}

	units, err := catalog.ListUnits(ctx, false)
	if err != nil {
		return fmt.Errorf("seed: listar unidades: %w", err)
	}
	if len(units) == 0 {
		for _, u := range defaultUnits {
			err := catalog.CreateUnit(ctx, &entity.Unit{
				ID:          uuid.New().String(),
				Code:        u[0],
				Description: u[1],
				Active:      true,
				CreatedAt:   now,
			})
			if err != nil && !errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("seed: unidade %s: %w", u[0], err)
			}
		}
	}
	return nil
}

var defaultSuppliers = []entity.Supplier{
	{Code: "FOR001", Name: "Brindes & Cia", ContactName: "João Silva", Phone: "(11) 3333-4444",
		Email: "contato@brindesecia.com.br", Address: "Rua das Flores, 123", City: "São Paulo", State: "SP",
		ZipCode: "01234-567", CNPJ: "12.345.678/0001-90", Notes: "Fornecedor principal de brindes"},
	{Code: "FOR002", Name: "Papelaria Central", ContactName: "Maria Santos", Phone: "(11) 5555-6666",
		Email: "vendas@papelcentral.com.br", Address: "Av. Central, 456", City: "São Paulo", State: "SP",
		ZipCode: "01234-890", CNPJ: "98.765.432/0001-10", Notes: "Especializada em papelaria"},
	{Code: "FOR003", Name: "Tech Brindes", ContactName: "Carlos Oliveira", Phone: "(21) 7777-8888",
		Email: "info@techbrindes.com.br", Address: "Rua da Tecnologia, 789", City: "Rio de Janeiro", State: "RJ",
		ZipCode: "20123-456", CNPJ: "11.222.333/0001-44", Notes: "Eletrônicos e gadgets"},
}

// SeedDirectory cadastra os fornecedores iniciais e o usuário admin quando as tabelas estão vazias.
func SeedDirectory(ctx context.Context, suppliers repository.SupplierRepository, users repository.UserRepository) error {
	now := time.Now()

	existing, err := suppliers.List(ctx, repository.SupplierFilter{})
	if err != nil {
		return fmt.Errorf("seed: listar fornecedores: %w", err)
	}
	if len(existing) == 0 {
		for _, s := range defaultSuppliers {
			s.ID = uuid.New().String()
			s.Active = true
			s.CreatedBy = "sistema"
			s.CreatedAt = now
			s.UpdatedAt = now
			if err := suppliers.Create(ctx, &s); err != nil && !errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("seed: fornecedor %s: %w", s.Code, err)
			}
		}
	}

	list, err := users.List(ctx, false)
	if err != nil {
		return fmt.Errorf("seed: listar usuários: %w", err)
	}
	if len(list) == 0 {
		err := users.Create(ctx, &entity.User{
			ID:        uuid.New().String(),
			Username:  "admin",
			Name:      "Administrador",
			Email:     "admin@empresa.com",
			Branch:    defaultBranches[0].name,
			Profile:   entity.ProfileAdmin,
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil && !errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("seed: usuário admin: %w", err)
		}
	}
	return nil
}
