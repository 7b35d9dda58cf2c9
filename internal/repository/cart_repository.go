package repository

import (
	"errors"

	"github.com/vietour/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
// 说明：购物车为每用户一行，项目行上带 (cart_id, tour_id) 唯一索引，
// 加购通过原子 upsert 完成，避免并发下的丢失更新。
type CartRepository interface {
	GetByUserID(userID uint) (*models.Cart, error)
	EnsureByUserID(userID uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	GetItemForCart(cartID, itemID uint) (*models.CartItem, error)
	UpsertItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) (int64, error)
	Clear(cartID uint) error
	CountItems(cartID uint) (int, error)
	TotalAmount(cartID uint) (models.Money, error)
	ItemSubtotal(itemID uint) (models.Money, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUserID 获取用户购物车（不存在返回 nil）
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// EnsureByUserID 惰性创建用户购物车
// 并发下依赖 carts.user_id 唯一索引：冲突即放弃插入，然后统一回读。
func (r *GormCartRepository) EnsureByUserID(userID uint) (*models.Cart, error) {
	if userID == 0 {
		return nil, errors.New("invalid cart owner")
	}
	cart := models.Cart{UserID: userID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&cart).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUserID(userID)
}

// ListItems 获取购物车项（按插入顺序）
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if cartID == 0 {
		return items, nil
	}
	if err := r.db.Preload("Tour").Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemForCart 获取属于指定购物车的项（不存在返回 nil）
func (r *GormCartRepository) GetItemForCart(cartID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Where("id = ? AND cart_id = ?", itemID, cartID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// UpsertItem 原子加购：已有同行程项则累加数量并覆盖单价快照
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "tour_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"unit_price": gorm.Expr("excluded.unit_price"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(item).Error
}

// UpdateItemQuantity 更新项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity).Error
}

// DeleteItem 删除项（硬删除），返回受影响行数
func (r *GormCartRepository) DeleteItem(itemID uint) (int64, error) {
	result := r.db.Where("id = ?", itemID).Delete(&models.CartItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Clear 清空购物车
func (r *GormCartRepository) Clear(cartID uint) error {
	if cartID == 0 {
		return nil
	}
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// CountItems 统计购物车内总件数（各项数量之和）
func (r *GormCartRepository) CountItems(cartID uint) (int, error) {
	if cartID == 0 {
		return 0, nil
	}
	var count int
	err := r.db.Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("cart_id = ?", cartID).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TotalAmount 计算购物车总金额（数据库侧求和）
func (r *GormCartRepository) TotalAmount(cartID uint) (models.Money, error) {
	var total models.Money
	if cartID == 0 {
		return total, nil
	}
	err := r.db.Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Where("cart_id = ?", cartID).
		Scan(&total).Error
	if err != nil {
		return models.Money{}, err
	}
	return total, nil
}

// ItemSubtotal 计算单项小计（项已删除时返回 0）
func (r *GormCartRepository) ItemSubtotal(itemID uint) (models.Money, error) {
	var subtotal models.Money
	if itemID == 0 {
		return subtotal, nil
	}
	err := r.db.Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity * unit_price), 0)").
		Where("id = ?", itemID).
		Scan(&subtotal).Error
	if err != nil {
		return models.Money{}, err
	}
	return subtotal, nil
}
