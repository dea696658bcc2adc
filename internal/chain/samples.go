package chain

import (
	"fmt"
	"time"

	"github.com/draxxycodes/NFT/internal/types"
)

// sampleNFTs is the demo catalog served when no provider key is
// configured, so the explorer stays usable in local development.
func (c *Client) sampleNFTs(owner string) []types.NFT {
	now := time.Now()
	entries := []struct {
		name        string
		description string
		image       string
	}{
		{"World Explorer #1", "A pioneering explorer of the World Chain ecosystem", "https://picsum.photos/seed/world1/400/400"},
		{"Chain Voyager #7", "Voyaging through decentralized frontiers", "https://picsum.photos/seed/world2/400/400"},
		{"Orb Keeper #42", "Guardian of verified humanity", "https://picsum.photos/seed/world3/400/400"},
	}

	nfts := make([]types.NFT, 0, len(entries))
	for i, e := range entries {
		tokenID := fmt.Sprintf("%d", i+1)
		nfts = append(nfts, types.NFT{
			ID:              fmt.Sprintf("sample_%s", tokenID),
			TokenID:         tokenID,
			ContractAddress: "0x0000000000000000000000000000000000000000",
			Owner:           owner,
			Name:            e.name,
			Description:     e.description,
			Image:           e.image,
			Metadata: &types.NFTMetadata{
				Name:        e.name,
				Description: e.description,
				Image:       e.image,
				Attributes: []types.NFTAttribute{
					{TraitType: "Rarity", Value: "Demo"},
					{TraitType: "Edition", Value: i + 1},
				},
			},
			Collection: &types.CollectionRef{
				Name:            "World Chain Demo",
				Symbol:          "WCDEMO",
				ContractAddress: "0x0000000000000000000000000000000000000000",
			},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return nfts
}

// TrendingCollections returns the curated featured list shown when no
// specific contract is requested. The list is static; the provider has
// no trending endpoint on World Chain.
func (c *Client) TrendingCollections() []types.Collection {
	return TrendingCollections()
}

// TrendingCollections is the curated list behind Client.TrendingCollections.
func TrendingCollections() []types.Collection {
	return []types.Collection{
		{
			Name:            "World Citizens",
			Symbol:          "WLDCTZN",
			ContractAddress: "0x1234567890123456789012345678901234567890",
			Description:     "The first citizens of the World Chain",
			Image:           "https://picsum.photos/seed/collection1/400/400",
			TotalSupply:     10000,
			FloorPrice:      "0.5",
			VolumeTraded:    "1250.8",
			OwnersCount:     3500,
		},
		{
			Name:            "Orb Artifacts",
			Symbol:          "ORBART",
			ContractAddress: "0x2345678901234567890123456789012345678901",
			Description:     "Mystical artifacts from the Orb dimension",
			Image:           "https://picsum.photos/seed/collection2/400/400",
			TotalSupply:     5000,
			FloorPrice:      "1.2",
			VolumeTraded:    "890.3",
			OwnersCount:     1800,
		},
		{
			Name:            "Chain Genesis",
			Symbol:          "CHGEN",
			ContractAddress: "0x3456789012345678901234567890123456789012",
			Description:     "Genesis tokens marking the birth of World Chain",
			Image:           "https://picsum.photos/seed/collection3/400/400",
			TotalSupply:     2500,
			FloorPrice:      "2.8",
			VolumeTraded:    "2100.5",
			OwnersCount:     950,
		},
	}
}
