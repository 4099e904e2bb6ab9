package directory

import (
	"context"
	"time"

	"admincore.org/internal/collection"
)

// Fixture sources stand in for the real directory service. They return fresh
// copies on every call so one controller's mutations never leak into another.

// SeedUsers is a collection.Source over the sample user set.
func SeedUsers(ctx context.Context) ([]*User, error) {
	now := time.Now().UTC()
	return []*User{
		{ID: "1", Name: "Juan Pérez", Email: "juan.perez@example.com", Role: RoleAdmin,
			State: collection.StatusActive, LastLogin: now.Add(-2 * 24 * time.Hour), LoginCount: 45},
		{ID: "2", Name: "María García", Email: "maria.garcia@example.com", Role: RoleUser,
			State: collection.StatusActive, LastLogin: now.Add(-5 * 24 * time.Hour), LoginCount: 23},
		{ID: "3", Name: "Carlos López", Email: "carlos.lopez@example.com", Role: RoleUser,
			State: collection.StatusBlocked, LastLogin: now.Add(-30 * 24 * time.Hour), LoginCount: 5},
		{ID: "4", Name: "Ana Martínez", Email: "ana.martinez@example.com", Role: RoleUser,
			State: collection.StatusActive, LastLogin: now.Add(-24 * time.Hour), LoginCount: 67},
		{ID: "5", Name: "Luis Sánchez", Email: "luis.sanchez@example.com", Role: RoleUser,
			State: collection.StatusActive, LastLogin: now.Add(-10 * time.Minute), LoginCount: 156},
		{ID: "6", Name: "Sofía Rodríguez", Email: "sofia.rodriguez@example.com", Role: RoleUser,
			State: collection.StatusActive, LastLogin: now.Add(-3 * 24 * time.Hour), LoginCount: 34},
		{ID: "7", Name: "Diego Torres", Email: "diego.torres@example.com", Role: RoleUser,
			State: collection.StatusActive, LastLogin: now.Add(-7 * 24 * time.Hour), LoginCount: 12},
		{ID: "8", Name: "Gabriela Méndez", Email: "gabriela.mendez@example.com", Role: RoleUser,
			State: collection.StatusInactive, LastLogin: now.Add(-15 * 24 * time.Hour), LoginCount: 8},
	}, nil
}

// SeedClients is a collection.Source over the sample client set.
func SeedClients(ctx context.Context) ([]*Client, error) {
	now := time.Now().UTC()
	return []*Client{
		{ID: "1", Name: "Juan García", Email: "juan.garcia@email.com", Type: ClientTypeApp,
			State: collection.StatusActive, JoinedAt: now.Add(-40 * 24 * time.Hour),
			LastActive: now.Add(-2 * time.Hour), TotalPurchases: 12, TotalSpentCents: 45050},
		{ID: "2", Name: "María López", Email: "maria.lopez@email.com", Type: ClientTypeVoucher,
			State: collection.StatusActive, JoinedAt: now.Add(-70 * 24 * time.Hour),
			LastActive: now.Add(-24 * time.Hour), TotalPurchases: 5, TotalSpentCents: 12000},
		{ID: "3", Name: "Carlos Mendoza", Email: "carlos.mendoza@email.com", Type: ClientTypeApp,
			State: collection.StatusActive, JoinedAt: now.Add(-100 * 24 * time.Hour),
			LastActive: now.Add(-3 * 24 * time.Hour), TotalPurchases: 23, TotalSpentCents: 89075},
		{ID: "4", Name: "Laura Fernández", Email: "laura.fernandez@email.com", Type: ClientTypeVoucher,
			State: collection.StatusInactive, JoinedAt: now.Add(-130 * 24 * time.Hour),
			LastActive: now.Add(-120 * 24 * time.Hour), TotalPurchases: 2, TotalSpentCents: 4500},
		{ID: "5", Name: "Roberto Ruiz", Email: "roberto.ruiz@email.com", Type: ClientTypeApp,
			State: collection.StatusActive, JoinedAt: now.Add(-20 * 24 * time.Hour),
			LastActive: now.Add(-time.Hour), TotalPurchases: 8, TotalSpentCents: 32025},
		{ID: "6", Name: "Sofía González", Email: "sofia.gonzalez@email.com", Type: ClientTypeVoucher,
			State: collection.StatusActive, JoinedAt: now.Add(-160 * 24 * time.Hour),
			LastActive: now.Add(-5 * 24 * time.Hour), TotalPurchases: 15, TotalSpentCents: 68050},
	}, nil
}
