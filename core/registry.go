package core

import (
	"math/big"

	"connectsphere/native/common"
	"connectsphere/native/content"
)

func (n *Node) CreateContent(creator [20]byte, contentRef, contentType string) (*content.Content, error) {
	var item *content.Content
	err := n.apply(common.ModuleContent, "createContent", creator, func(tx *txn) error {
		var err error
		item, err = tx.registry.CreateContent(creator, contentRef, contentType)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (n *Node) LikeContent(id uint64, caller [20]byte) (*content.Content, error) {
	return n.mutateContent("likeContent", caller, func(tx *txn) (*content.Content, error) {
		return tx.registry.LikeContent(id, caller)
	})
}

func (n *Node) ShareContent(id uint64, caller [20]byte) (*content.Content, error) {
	return n.mutateContent("shareContent", caller, func(tx *txn) (*content.Content, error) {
		return tx.registry.ShareContent(id, caller)
	})
}

func (n *Node) ReportContent(id uint64, caller [20]byte, reason string) (*content.Content, error) {
	return n.mutateContent("reportContent", caller, func(tx *txn) (*content.Content, error) {
		return tx.registry.ReportContent(id, caller, reason)
	})
}

func (n *Node) RemoveContent(id uint64, moderator [20]byte) (*content.Content, error) {
	return n.mutateContent("removeContent", moderator, func(tx *txn) (*content.Content, error) {
		return tx.registry.RemoveContent(id, moderator)
	})
}

func (n *Node) mutateContent(op string, actor [20]byte, fn func(tx *txn) (*content.Content, error)) (*content.Content, error) {
	var item *content.Content
	err := n.apply(common.ModuleContent, op, actor, func(tx *txn) error {
		var err error
		item, err = fn(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CreateLicense issues a license paid out of the escrow account. The fee and
// creator transfers commit together or not at all.
func (n *Node) CreateLicense(contentID uint64, licensee [20]byte, duration uint64, isExclusive bool, payment *big.Int, caller [20]byte) (*content.License, error) {
	var license *content.License
	err := n.apply(common.ModuleContent, "createLicense", caller, func(tx *txn) error {
		var err error
		license, err = tx.registry.CreateLicense(contentID, licensee, duration, isExclusive, payment, caller)
		return err
	})
	if err != nil {
		return nil, err
	}
	return license, nil
}

func (n *Node) VerifyCreator(creator, caller [20]byte) (*content.Creator, error) {
	return n.mutateCreator("verifyCreator", caller, func(tx *txn) (*content.Creator, error) {
		return tx.registry.VerifyCreator(creator, caller)
	})
}

func (n *Node) BanCreator(creator [20]byte, reason string, caller [20]byte) (*content.Creator, error) {
	return n.mutateCreator("banCreator", caller, func(tx *txn) (*content.Creator, error) {
		return tx.registry.BanCreator(creator, reason, caller)
	})
}

func (n *Node) mutateCreator(op string, actor [20]byte, fn func(tx *txn) (*content.Creator, error)) (*content.Creator, error) {
	var record *content.Creator
	err := n.apply(common.ModuleContent, op, actor, func(tx *txn) error {
		var err error
		record, err = fn(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (n *Node) UpdatePlatformFee(newFeeBps uint32, caller [20]byte) error {
	return n.apply(common.ModuleContent, "updatePlatformFee", caller, func(tx *txn) error {
		return tx.registry.UpdatePlatformFee(newFeeBps, caller)
	})
}

func (n *Node) SetFeeRecipient(recipient, caller [20]byte) error {
	return n.apply(common.ModuleContent, "setFeeRecipient", caller, func(tx *txn) error {
		return tx.registry.SetFeeRecipient(recipient, caller)
	})
}

func (n *Node) Content(id uint64) (*content.Content, error) {
	var item *content.Content
	err := n.view(func(tx *txn) error {
		var err error
		item, err = tx.registry.Content(id)
		return err
	})
	return item, err
}

func (n *Node) Creator(wallet [20]byte) (*content.Creator, error) {
	var record *content.Creator
	err := n.view(func(tx *txn) error {
		var err error
		record, err = tx.registry.Creator(wallet)
		return err
	})
	return record, err
}

func (n *Node) License(id uint64) (*content.License, error) {
	var license *content.License
	err := n.view(func(tx *txn) error {
		var err error
		license, err = tx.registry.License(id)
		return err
	})
	return license, err
}

func (n *Node) GetCreatorContents(creator [20]byte) ([]uint64, error) {
	var ids []uint64
	err := n.view(func(tx *txn) error {
		var err error
		ids, err = tx.registry.CreatorContents(creator)
		return err
	})
	return ids, err
}

func (n *Node) GetContentLicenses(contentID uint64) ([]uint64, error) {
	var ids []uint64
	err := n.view(func(tx *txn) error {
		var err error
		ids, err = tx.registry.ContentLicenses(contentID)
		return err
	})
	return ids, err
}

// IsLicenseValid reports whether the license is active and not yet expired.
// Unknown licenses are invalid.
func (n *Node) IsLicenseValid(id uint64) (bool, error) {
	var valid bool
	err := n.view(func(tx *txn) error {
		var err error
		valid, err = tx.registry.IsLicenseValid(id)
		return err
	})
	return valid, err
}

func (n *Node) HasUserLikedContent(id uint64, user [20]byte) (bool, error) {
	var liked bool
	err := n.view(func(tx *txn) error {
		var err error
		liked, err = tx.registry.HasUserLikedContent(id, user)
		return err
	})
	return liked, err
}

func (n *Node) HasUserReportedContent(id uint64, user [20]byte) (bool, error) {
	var reported bool
	err := n.view(func(tx *txn) error {
		var err error
		reported, err = tx.registry.HasUserReportedContent(id, user)
		return err
	})
	return reported, err
}

// PlatformFee returns the current fee in basis points.
func (n *Node) PlatformFee() (uint32, error) {
	params, err := n.RegistryParams()
	return params.FeeBps, err
}

func (n *Node) RegistryParams() (content.Params, error) {
	var params content.Params
	err := n.view(func(tx *txn) error {
		var err error
		params, err = tx.registry.Params()
		return err
	})
	return params, err
}
