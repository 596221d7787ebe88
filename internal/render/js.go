package render

// JS emits the shared script bundle. No document data is embedded; all
// behavior is driven by data attributes in the generated markup, so the
// output is a constant.
func JS() string { return jsBundle }

const jsBundle = `/* PortfolioLab Export - Generated JavaScript */
(function() {
  'use strict';

  var prefersReducedMotion = window.matchMedia('(prefers-reduced-motion: reduce)').matches;

  /* Scroll reveal animations */
  function initScrollReveal() {
    if (prefersReducedMotion) return;

    var observer = new IntersectionObserver(function(entries) {
      entries.forEach(function(entry) {
        if (entry.isIntersecting) {
          entry.target.classList.add('animate-on-scroll');
          observer.unobserve(entry.target);
        }
      });
    }, { threshold: 0.1, rootMargin: '0px 0px -100px 0px' });

    document.querySelectorAll('section').forEach(function(section) {
      observer.observe(section);
    });
  }

  /* Parallax transform updates on scroll */
  function initParallax() {
    if (prefersReducedMotion) return;

    var parallaxElements = document.querySelectorAll('[data-parallax]');
    if (parallaxElements.length === 0) return;

    function updateParallax() {
      var scrollY = window.pageYOffset;
      parallaxElements.forEach(function(element) {
        var speed = parseFloat(element.getAttribute('data-parallax') || '0.5');
        element.style.transform = 'translateY(' + (-(scrollY * speed)) + 'px)';
      });
    }

    var ticking = false;
    window.addEventListener('scroll', function() {
      if (!ticking) {
        window.requestAnimationFrame(function() {
          updateParallax();
          ticking = false;
        });
        ticking = true;
      }
    });

    updateParallax();
  }

  /* Skill bar width animation on first visibility */
  function animateSkillBars() {
    if (prefersReducedMotion) {
      document.querySelectorAll('.skill-bar-fill').forEach(function(bar) {
        bar.style.width = bar.getAttribute('data-level') + '%';
        bar.style.transition = 'none';
      });
      return;
    }

    var skillSection = document.querySelector('.skills-section');
    if (!skillSection) return;

    var observer = new IntersectionObserver(function(entries) {
      entries.forEach(function(entry) {
        if (entry.isIntersecting) {
          var skillBars = entry.target.querySelectorAll('.skill-bar-fill');
          skillBars.forEach(function(bar, index) {
            setTimeout(function() {
              bar.style.width = bar.getAttribute('data-level') + '%';
            }, index * 100);
          });
          observer.unobserve(entry.target);
        }
      });
    }, { threshold: 0.3 });

    observer.observe(skillSection);
  }

  /* External link hardening */
  function protectExternalLinks() {
    document.querySelectorAll('a[href^="http"]').forEach(function(link) {
      var url = new URL(link.href);
      if (url.origin !== window.location.origin) {
        link.setAttribute('target', '_blank');
        link.setAttribute('rel', 'noopener noreferrer');
      }
    });
  }

  /* Smooth in-page anchor scrolling */
  function initSmoothScroll() {
    document.querySelectorAll('a[href^="#"]').forEach(function(anchor) {
      anchor.addEventListener('click', function(e) {
        var targetId = this.getAttribute('href');
        if (targetId === '#') return;

        var targetElement = document.querySelector(targetId);
        if (targetElement) {
          e.preventDefault();
          targetElement.scrollIntoView({
            behavior: prefersReducedMotion ? 'auto' : 'smooth',
            block: 'start'
          });
        }
      });
    });
  }

  /* Lazy image loading fallback for browsers without native support */
  function initLazyLoading() {
    if ('loading' in HTMLImageElement.prototype) {
      document.querySelectorAll('img[loading="lazy"]').forEach(function(img) {
        if (img.dataset.src) {
          img.src = img.dataset.src;
        }
      });
    } else {
      var images = document.querySelectorAll('img[data-src]');
      var imageObserver = new IntersectionObserver(function(entries) {
        entries.forEach(function(entry) {
          if (entry.isIntersecting) {
            var img = entry.target;
            img.src = img.dataset.src;
            img.removeAttribute('data-src');
            imageObserver.unobserve(img);
          }
        });
      });
      images.forEach(function(img) { imageObserver.observe(img); });
    }
  }

  function init() {
    if (document.readyState === 'loading') {
      document.addEventListener('DOMContentLoaded', init);
      return;
    }

    initScrollReveal();
    initParallax();
    animateSkillBars();
    protectExternalLinks();
    initSmoothScroll();
    initLazyLoading();
  }

  init();

})();
`
