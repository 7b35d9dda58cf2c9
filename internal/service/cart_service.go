package service

import (
	"time"

	"github.com/vietour/internal/config"
	"github.com/vietour/internal/models"
	"github.com/vietour/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItemView 购物车项视图（用于响应）
type CartItemView struct {
	ID        uint         `json:"id"`
	TourID    uint         `json:"tour_id"`
	TourName  string       `json:"tour_name"`
	AvatarURL string       `json:"avatar_url"`
	Quantity  int          `json:"quantity"`
	UnitPrice models.Money `json:"unit_price"`
	Subtotal  models.Money `json:"subtotal"`
}

// CartView 购物车视图
type CartView struct {
	Items     []CartItemView `json:"items"`
	CartCount int            `json:"cart_count"`
	Total     models.Money   `json:"total"`
}

// CartMutationResult 购物车变更结果（提交后重新计算）
type CartMutationResult struct {
	CartCount    int          `json:"cart_count"`
	Total        models.Money `json:"total"`
	ItemSubtotal models.Money `json:"item_subtotal"`
}

// CartService 购物车服务
type CartService struct {
	cfg      *config.Config
	cartRepo repository.CartRepository
	tourRepo repository.TourRepository
}

// NewCartService 创建购物车服务
func NewCartService(cfg *config.Config, cartRepo repository.CartRepository, tourRepo repository.TourRepository) *CartService {
	return &CartService{
		cfg:      cfg,
		cartRepo: cartRepo,
		tourRepo: tourRepo,
	}
}

// AddItem 加购行程。
// 购物车惰性创建（唯一索引兜底并发），同一行程的项在数据库侧原子累加数量、
// 覆盖单价快照。返回提交后重新统计的购物车件数。
func (s *CartService) AddItem(userID, tourID uint, quantity int) (*CartMutationResult, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	if tourID == 0 || quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var cartID uint
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartRepo.WithTx(tx).EnsureByUserID(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrNotFound
		}
		cartID = cart.ID

		tour, err := s.tourRepo.WithTx(tx).GetActiveByID(tourID)
		if err != nil {
			return err
		}
		if tour == nil {
			return ErrTourNotFound
		}

		now := time.Now()
		item := &models.CartItem{
			CartID:    cart.ID,
			TourID:    tour.ID,
			Quantity:  quantity,
			UnitPrice: tour.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.cartRepo.WithTx(tx).UpsertItem(item)
	})
	if err != nil {
		return nil, err
	}

	count, err := s.cartRepo.CountItems(cartID)
	if err != nil {
		return nil, err
	}
	total, err := s.cartRepo.TotalAmount(cartID)
	if err != nil {
		return nil, err
	}
	return &CartMutationResult{CartCount: count, Total: total}, nil
}

// UpdateQuantity 修改项数量。负数按 0 处理，0 即删除该项（不保留零数量行）。
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*CartMutationResult, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	if quantity < 0 {
		quantity = 0
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	deleted := false
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		item, err := repo.GetItemForCart(cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		if quantity == 0 {
			deleted = true
			_, err := repo.DeleteItem(item.ID)
			return err
		}
		return repo.UpdateItemQuantity(item.ID, quantity)
	})
	if err != nil {
		return nil, err
	}

	result, err := s.mutationResult(cart.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		subtotal, err := s.cartRepo.ItemSubtotal(itemID)
		if err != nil {
			return nil, err
		}
		result.ItemSubtotal = subtotal
	}
	return result, nil
}

// RemoveItem 删除购物车项。项不存在返回结构化错误而非空指针。
func (s *CartService) RemoveItem(userID, itemID uint) (*CartMutationResult, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		repo := s.cartRepo.WithTx(tx)
		item, err := repo.GetItemForCart(cart.ID, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		affected, err := repo.DeleteItem(item.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrCartItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.mutationResult(cart.ID)
}

// View 获取购物车视图。空购物车（或尚未创建）返回零项零金额。
func (s *CartService) View(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	view := &CartView{Items: make([]CartItemView, 0), Total: models.NewMoneyFromInt(0)}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return view, nil
	}

	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		itemView := CartItemView{
			ID:        item.ID,
			TourID:    item.TourID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  models.NewMoneyFromDecimal(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))),
		}
		avatar := ""
		if item.Tour != nil {
			itemView.TourName = item.Tour.Name
			avatar = item.Tour.AvatarURL
		}
		itemView.AvatarURL = resolveTourAvatarURL(s.cfg.Assets, avatar)
		view.Items = append(view.Items, itemView)
		view.CartCount += item.Quantity
	}

	total, err := s.cartRepo.TotalAmount(cart.ID)
	if err != nil {
		return nil, err
	}
	view.Total = total
	return view, nil
}

func (s *CartService) mutationResult(cartID uint) (*CartMutationResult, error) {
	count, err := s.cartRepo.CountItems(cartID)
	if err != nil {
		return nil, err
	}
	total, err := s.cartRepo.TotalAmount(cartID)
	if err != nil {
		return nil, err
	}
	return &CartMutationResult{
		CartCount:    count,
		Total:        total,
		ItemSubtotal: models.NewMoneyFromInt(0),
	}, nil
}
