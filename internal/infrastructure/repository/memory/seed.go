package memory

import (
	"time"

	"github.com/riskibarqy/proconnect-api/internal/domain/investor"
	"github.com/riskibarqy/proconnect-api/internal/domain/unlock"
	"github.com/riskibarqy/proconnect-api/internal/domain/user"
)

var seedCreatedAt = time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)

func SeedUsers() []user.Profile {
	return []user.Profile{
		{ID: 1, FullName: "Ayu Lestari", Headline: "Founder & CEO", Company: "Kopi Kode", Location: "Jakarta", CreatedAt: seedCreatedAt},
		{ID: 2, FullName: "Budi Santoso", Headline: "Head of Engineering", Company: "Logistik Cepat", Location: "Surabaya", CreatedAt: seedCreatedAt.Add(24 * time.Hour)},
		{ID: 3, FullName: "Citra Dewi", Headline: "Product Lead", Company: "Sehatku", Location: "Bandung", AvatarURL: "https://cdn.proconnect.example/avatars/3.png", CreatedAt: seedCreatedAt.Add(48 * time.Hour)},
		{ID: 4, FullName: "Dimas Pratama", Headline: "Angel Investor", Company: "Independent", Location: "Singapore", CreatedAt: seedCreatedAt.Add(72 * time.Hour)},
	}
}

func SeedInvestors() []investor.Investor {
	return []investor.Investor{
		{
			ID:        1,
			FirmName:  "Northwind Ventures",
			Focus:     "fintech",
			TicketMin: 50_000,
			TicketMax: 500_000,
			Stage:     investor.StageSeed,
			Contact: investor.Contact{
				Email:       "deals@northwind.example",
				Phone:       "+62 21 555 0101",
				LinkedInURL: "https://www.linkedin.com/company/northwind-ventures",
			},
		},
		{
			ID:        2,
			FirmName:  "Archipelago Capital",
			Focus:     "logistics",
			TicketMin: 250_000,
			TicketMax: 3_000_000,
			Stage:     investor.StageSeriesA,
			Contact: investor.Contact{
				Email: "hello@archipelago.example",
			},
		},
		{
			ID:        3,
			FirmName:  "Early Light Angels",
			Focus:     "healthtech",
			TicketMin: 10_000,
			TicketMax: 100_000,
			Stage:     investor.StagePreSeed,
			Contact: investor.Contact{
				Email:       "pitch@earlylight.example",
				LinkedInURL: "https://www.linkedin.com/company/early-light-angels",
			},
		},
	}
}

func SeedUnlocks() []unlock.Unlock {
	return []unlock.Unlock{
		{ID: 1, UserID: 1, InvestorID: 2, CreatedAt: seedCreatedAt.Add(96 * time.Hour)},
	}
}
